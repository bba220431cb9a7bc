package filter

import (
	"strings"
)

// Item is an option together with its checked flag.
type Item struct {
	Option
	Checked bool `json:"checked"`
}

// State holds the checked flags for every catalog option plus the live
// search text. It never filters events itself; Apply hands the checked ids
// to whoever consumes them.
type State struct {
	catalog Catalog
	checked map[Category]map[string]bool
	search  string
}

// New returns a state with nothing checked.
func New(catalog Catalog) *State {
	s := &State{catalog: catalog}
	s.clear()
	return s
}

func (s *State) clear() {
	s.checked = make(map[Category]map[string]bool, 3)
	for _, cat := range Categories() {
		s.checked[cat] = make(map[string]bool)
	}
	s.search = ""
}

// Catalog returns the catalog the state was built from.
func (s *State) Catalog() Catalog { return s.catalog }

// Toggle sets one option's checked flag. Ids outside the catalog are
// ignored.
func (s *State) Toggle(cat Category, id string, checked bool) {
	if _, ok := s.catalog.Option(cat, id); !ok {
		return
	}
	if checked {
		s.checked[cat][id] = true
		return
	}
	delete(s.checked[cat], id)
}

// Flip inverts one option's checked flag.
func (s *State) Flip(cat Category, id string) {
	s.Toggle(cat, id, !s.Checked(cat, id))
}

// Checked reports whether an option is checked.
func (s *State) Checked(cat Category, id string) bool {
	return s.checked[cat][id]
}

// Count is the number of checked options in a category.
func (s *State) Count(cat Category) int {
	return len(s.checked[cat])
}

// SetSearch updates the search text.
func (s *State) SetSearch(q string) { s.search = q }

// Search returns the search text.
func (s *State) Search() string { return s.search }

// Visible returns the category's options whose name contains the search
// text, ignoring case. Hidden options keep their checked flags.
func (s *State) Visible(cat Category) []Item {
	q := strings.ToLower(strings.TrimSpace(s.search))
	var items []Item
	for _, o := range s.catalog.Options(cat) {
		if q != "" && !strings.Contains(strings.ToLower(o.Name), q) {
			continue
		}
		items = append(items, Item{Option: o, Checked: s.Checked(cat, o.ID)})
	}
	return items
}

// Selection exports the checked ids per category in catalog order.
func (s *State) Selection() Selection {
	return Selection{
		Countries:  s.checkedIDs(Countries),
		Religions:  s.checkedIDs(Religions),
		EventTypes: s.checkedIDs(EventTypes),
	}
}

func (s *State) checkedIDs(cat Category) []string {
	ids := make([]string, 0, len(s.checked[cat]))
	for _, o := range s.catalog.Options(cat) {
		if s.checked[cat][o.ID] {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Apply passes the current Selection to fn.
func (s *State) Apply(fn func(Selection)) {
	if fn == nil {
		return
	}
	fn(s.Selection())
}

// Reset unchecks everything, clears the search, then calls fn.
func (s *State) Reset(fn func()) {
	s.clear()
	if fn != nil {
		fn()
	}
}

// Listing is the visible catalog with checked flags, as served by the JSON
// outputs.
type Listing struct {
	Search     string `json:"search,omitempty"`
	Countries  []Item `json:"countries"`
	Religions  []Item `json:"religions"`
	EventTypes []Item `json:"eventTypes"`
}

// Listing captures the visible options of every category.
func (s *State) Listing() Listing {
	l := Listing{
		Search:     s.search,
		Countries:  s.Visible(Countries),
		Religions:  s.Visible(Religions),
		EventTypes: s.Visible(EventTypes),
	}
	for _, items := range []*[]Item{&l.Countries, &l.Religions, &l.EventTypes} {
		if *items == nil {
			*items = []Item{}
		}
	}
	return l
}

// Preselect checks every id of sel that exists in the catalog.
func (s *State) Preselect(sel Selection) {
	for _, cat := range Categories() {
		for _, id := range sel.IDs(cat) {
			s.Toggle(cat, id, true)
		}
	}
}
