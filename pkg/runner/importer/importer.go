// Package importer loads event files into the store.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/ics"
	"tableflip.dev/worldsync/pkg/printers"
	"tableflip.dev/worldsync/pkg/store"
)

// Import reads Path, or In when Path is "-", and stores every event.
type Import struct {
	Service *app.Service
	Path    string
	// Format overrides the extension: yaml, json or ics.
	Format string
	In     io.Reader
	Out    io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	data, err := n.read()
	if err != nil {
		return err
	}
	events, err := Decode(data, n.format())
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("no events found in %s", n.Path)
	}

	count, err := n.Service.Import(ctx, events)
	pp := printers.New(n.Out)
	pp.TitleWithCount("Imported", count)
	pp.Events(events[:count]...)
	return err
}

func (n *Import) read() ([]byte, error) {
	if n.Path == "-" {
		if n.In == nil {
			return nil, errors.New("no input to read")
		}
		return io.ReadAll(n.In)
	}
	return os.ReadFile(n.Path)
}

func (n *Import) format() string {
	if n.Format != "" {
		return strings.ToLower(n.Format)
	}
	if strings.EqualFold(filepath.Ext(n.Path), ".ics") {
		return "ics"
	}
	if f, err := store.FormatOf(n.Path); err == nil {
		return f
	}
	return ""
}

// Decode parses events in yaml, json or ics format.
func Decode(data []byte, format string) ([]event.Event, error) {
	switch format {
	case "ics":
		return ics.Import(bytes.NewReader(data))
	case "yaml", "json":
		return store.DecodeEvents(data, format)
	}
	return nil, fmt.Errorf("unknown event format %q, want yaml, json or ics", format)
}
