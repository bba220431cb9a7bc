package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/worldsync/pkg/event"
)

// ErrNotFound is returned when no stored event has the requested id.
var ErrNotFound = errors.New("store: event not found")

// Persistence defines the persistence contract for imported events.
type Persistence interface {
	ListAll(ctx context.Context) []event.Event
	Get(ctx context.Context, id string) (event.Event, error)
	Store(e event.Event) error
	Delete(id string) error
	Watch(ctx context.Context) (<-chan Change, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return event.Event{}, err
	}
	var e event.Event
	if err := json.Unmarshal(val, &e); err != nil {
		return event.Event{}, err
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) []event.Event {
	all := make([]event.Event, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	event.Sort(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (event.Event, error) {
	key, ok := p.keyFor(ctx, id)
	if !ok {
		return event.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

// Store writes e under its month bucket. An event stored earlier with the
// same id but a different date is replaced.
func (p *persistence) Store(e event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	key := toKey(e)
	if old, ok := p.keyFor(context.Background(), e.ID); ok && old != key {
		if err := p.d.Erase(old); err != nil {
			return fmt.Errorf("store: erase %s: %w", old, err)
		}
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Delete(id string) error {
	key, ok := p.keyFor(context.Background(), id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) keyFor(ctx context.Context, id string) (string, bool) {
	suffix := "-" + encodeID(id)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasSuffix(key, suffix) {
			return key, true
		}
	}
	return "", false
}

// keys look like `year-month-hexid`, stored as year/month/hexid.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(e event.Event) string {
	return fmt.Sprintf("%s-%s", bucket(e.Date), encodeID(e.ID))
}

// bucket names the year-month directory pair an event lives in.
func bucket(d event.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// Ids are free text (imported UIDs contain dashes and slashes), so they are
// hex encoded before becoming file names.
func encodeID(id string) string {
	return hex.EncodeToString([]byte(id))
}
