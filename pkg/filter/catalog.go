// Package filter tracks which catalog entries are checked in each filter
// category and exports the checked ids as a Selection.
package filter

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Category names one of the independent filter facets.
type Category string

const (
	// Countries filters on Event.Country.
	Countries Category = "countries"
	// Religions filters on Event.Religion.
	Religions Category = "religions"
	// EventTypes filters on Event.Type.
	EventTypes Category = "eventTypes"
)

// Categories lists the facets in sidebar order.
func Categories() []Category {
	return []Category{Countries, Religions, EventTypes}
}

// Label is the section heading for the category.
func (c Category) Label() string {
	switch c {
	case Countries:
		return "Countries"
	case Religions:
		return "Religions"
	case EventTypes:
		return "Event Types"
	}
	return string(c)
}

// Empty is the message shown when a search hides every option.
func (c Category) Empty() string {
	return fmt.Sprintf("No %s match your search", strings.ToLower(c.Label()))
}

// ParseCategory accepts the category id or a loose spelling of it.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "countries", "country":
		return Countries, nil
	case "religions", "religion":
		return Religions, nil
	case "eventtypes", "event-types", "types", "type":
		return EventTypes, nil
	}
	return "", fmt.Errorf("filter: unknown category %q", s)
}

// Option is one selectable catalog entry.
type Option struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// Match lists extra event values this option accepts besides its id
	// and name.
	Match []string `yaml:"match,omitempty" json:"match,omitempty"`
}

// Matches reports whether an event field value belongs to the option.
func (o Option) Matches(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if strings.EqualFold(value, o.ID) || strings.EqualFold(value, o.Name) {
		return true
	}
	for _, m := range o.Match {
		if strings.EqualFold(value, m) {
			return true
		}
	}
	return false
}

// Catalog is the fixed list of selectable options per category.
type Catalog struct {
	Countries  []Option `yaml:"countries" json:"countries"`
	Religions  []Option `yaml:"religions" json:"religions"`
	EventTypes []Option `yaml:"eventTypes" json:"eventTypes"`
}

// Options returns the options of a category.
func (c Catalog) Options(cat Category) []Option {
	switch cat {
	case Countries:
		return c.Countries
	case Religions:
		return c.Religions
	case EventTypes:
		return c.EventTypes
	}
	return nil
}

// Option looks up an option by id.
func (c Catalog) Option(cat Category, id string) (Option, bool) {
	for _, o := range c.Options(cat) {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// DefaultCatalog returns the built-in reference catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("filter: embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog YAML file. An empty path yields the default.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("filter: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("filter: parse catalog: %w", err)
	}
	for _, cat := range Categories() {
		seen := make(map[string]bool)
		for _, o := range c.Options(cat) {
			if o.ID == "" || o.Name == "" {
				return Catalog{}, fmt.Errorf("filter: %s option needs id and name", cat)
			}
			if seen[o.ID] {
				return Catalog{}, fmt.Errorf("filter: duplicate %s id %q", cat, o.ID)
			}
			seen[o.ID] = true
		}
	}
	return c, nil
}
