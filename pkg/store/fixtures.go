package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/worldsync/pkg/event"
)

//go:embed holidays.yaml
var holidaysYAML []byte

// Document is the on-disk shape of an event file.
type Document struct {
	Events []event.Event `json:"events" yaml:"events"`
}

// Fixtures returns the built-in holiday set shown when the store is empty.
func Fixtures() []event.Event {
	events, err := DecodeEvents(holidaysYAML, "yaml")
	if err != nil {
		panic(fmt.Sprintf("store: embedded holidays: %v", err))
	}
	return events
}

// FormatOf maps a file name to "yaml" or "json".
func FormatOf(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	}
	return "", fmt.Errorf("store: unsupported event file %q", name)
}

// DecodeEvents reads an events document, or a bare list of events, in the
// given format. Every event is validated and ids must be unique.
func DecodeEvents(data []byte, format string) ([]event.Event, error) {
	var doc Document
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			if err2 := yaml.Unmarshal(data, &doc.Events); err2 != nil {
				return nil, fmt.Errorf("store: decode yaml: %w", err)
			}
		}
	case "json":
		trimmed := strings.TrimSpace(string(data))
		var err error
		if strings.HasPrefix(trimmed, "[") {
			err = json.Unmarshal(data, &doc.Events)
		} else {
			err = json.Unmarshal(data, &doc)
		}
		if err != nil {
			return nil, fmt.Errorf("store: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("store: unknown format %q", format)
	}

	seen := make(map[string]bool, len(doc.Events))
	for _, e := range doc.Events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("store: duplicate event id %q", e.ID)
		}
		seen[e.ID] = true
	}
	return doc.Events, nil
}

// EncodeEvents writes events as a YAML document.
func EncodeEvents(events []event.Event) ([]byte, error) {
	return yaml.Marshal(Document{Events: events})
}
