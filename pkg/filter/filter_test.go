package filter

import (
	"reflect"
	"testing"

	"tableflip.dev/worldsync/pkg/event"
)

func TestDefaultCatalogSizes(t *testing.T) {
	c := DefaultCatalog()
	if len(c.Countries) != 10 || len(c.Religions) != 10 || len(c.EventTypes) != 7 {
		t.Fatalf("expected 10/10/7 options, got %d/%d/%d", len(c.Countries), len(c.Religions), len(c.EventTypes))
	}
	if o, ok := c.Option(Countries, "in"); !ok || o.Name != "India" {
		t.Fatalf("expected india in catalog, got %+v", o)
	}
}

func TestApplyExportsCheckedIDs(t *testing.T) {
	s := New(DefaultCatalog())
	s.Toggle(Countries, "in", true)

	var got Selection
	calls := 0
	s.Apply(func(sel Selection) {
		calls++
		got = sel
	})

	if calls != 1 {
		t.Fatalf("expected one callback, got %d", calls)
	}
	want := Selection{Countries: []string{"in"}, Religions: []string{}, EventTypes: []string{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestApplyKeepsCatalogOrder(t *testing.T) {
	s := New(DefaultCatalog())
	s.Toggle(Countries, "fr", true)
	s.Toggle(Countries, "us", true)
	s.Toggle(Countries, "jp", true)
	s.Toggle(Countries, "jp", false)

	sel := s.Selection()
	if !reflect.DeepEqual(sel.Countries, []string{"us", "fr"}) {
		t.Fatalf("expected [us fr], got %v", sel.Countries)
	}
	if s.Count(Countries) != 2 {
		t.Fatalf("expected count 2, got %d", s.Count(Countries))
	}
}

func TestToggleIgnoresUnknownIDs(t *testing.T) {
	s := New(DefaultCatalog())
	s.Toggle(Religions, "pastafarian", true)
	if s.Count(Religions) != 0 {
		t.Fatalf("expected unknown id to be ignored")
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := New(DefaultCatalog())
	s.Toggle(Countries, "us", true)
	s.Toggle(Religions, "islam", true)
	s.Toggle(EventTypes, "un", true)
	s.SetSearch("ind")

	called := false
	s.Reset(func() { called = true })

	if !called {
		t.Fatalf("expected reset callback")
	}
	sel := s.Selection()
	if len(sel.Countries)+len(sel.Religions)+len(sel.EventTypes) != 0 {
		t.Fatalf("expected no checked ids after reset, got %+v", sel)
	}
	if s.Search() != "" {
		t.Fatalf("expected empty search, got %q", s.Search())
	}
}

func TestSearchNarrowsWithoutUnchecking(t *testing.T) {
	s := New(DefaultCatalog())
	s.Toggle(Countries, "us", true)
	s.SetSearch("IND")

	visible := s.Visible(Countries)
	if len(visible) != 1 || visible[0].ID != "in" {
		t.Fatalf("expected only India visible, got %+v", visible)
	}
	if !s.Checked(Countries, "us") {
		t.Fatalf("hidden option lost its checked flag")
	}
	if got := s.Selection().Countries; !reflect.DeepEqual(got, []string{"us"}) {
		t.Fatalf("expected hidden option still exported, got %v", got)
	}

	if got := s.Visible(Religions); len(got) != 1 || got[0].ID != "hindu" {
		t.Fatalf("expected only Hinduism to match, got %+v", got)
	}

	s.SetSearch("zzz")
	for _, cat := range Categories() {
		if got := s.Visible(cat); len(got) != 0 {
			t.Fatalf("expected no %s matches, got %+v", cat, got)
		}
	}
	if !s.Checked(Countries, "us") {
		t.Fatalf("empty search result cleared a checked flag")
	}
	if msg := Religions.Empty(); msg != "No religions match your search" {
		t.Fatalf("unexpected empty message %q", msg)
	}
	if msg := EventTypes.Empty(); msg != "No event types match your search" {
		t.Fatalf("unexpected empty message %q", msg)
	}
}

func TestPredicateSemantics(t *testing.T) {
	c := DefaultCatalog()
	diwali := event.Event{ID: "6", Type: event.Religious, Religion: "Hindu", Country: "India"}
	bastille := event.Event{ID: "8", Type: event.National, Country: "France"}
	mothers := event.Event{ID: "4", Type: event.Special, Country: "United States"}
	eid := event.Event{ID: "11", Type: event.Religious, Religion: "Islam"}

	cases := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"empty accepts all", Selection{}, []string{"6", "8", "4", "11"}},
		{"country by name", Selection{Countries: []string{"in"}}, []string{"6"}},
		{"or within category", Selection{Countries: []string{"in", "fr"}}, []string{"6", "8"}},
		{"and across categories", Selection{Countries: []string{"in"}, EventTypes: []string{"national"}}, nil},
		{"religion by id", Selection{Religions: []string{"hindu", "islam"}}, []string{"6", "11"}},
		{"type alias", Selection{EventTypes: []string{"family"}}, []string{"4"}},
		{"custom matches nothing", Selection{EventTypes: []string{"custom"}}, nil},
	}
	for _, tc := range cases {
		got := tc.sel.Apply(c, []event.Event{diwali, bastille, mothers, eid})
		var ids []string
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		if !reflect.DeepEqual(ids, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, ids)
		}
	}
}

func TestParseCatalogRejectsDuplicates(t *testing.T) {
	_, err := ParseCatalog([]byte("countries:\n  - {id: us, name: A}\n  - {id: us, name: B}\n"))
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"country": Countries, "Religions": Religions, "type": EventTypes} {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q) = %s, %v", in, got, err)
		}
	}
}

func TestListingMarksPreselected(t *testing.T) {
	st := New(DefaultCatalog())
	st.Preselect(Selection{Countries: []string{"us", "atlantis"}, EventTypes: []string{"un"}})
	st.SetSearch("united")

	l := st.Listing()
	if l.Search != "united" {
		t.Fatalf("unexpected search %q", l.Search)
	}
	if len(l.Countries) == 0 || !l.Countries[0].Checked || l.Countries[0].ID != "us" {
		t.Fatalf("expected us checked and visible, got %+v", l.Countries)
	}
	if l.Religions == nil || len(l.Religions) != 0 {
		t.Fatalf("expected empty religions, got %+v", l.Religions)
	}
	if st.Count(Countries) != 1 || st.Count(EventTypes) != 1 {
		t.Fatalf("unknown ids must be ignored, got %d countries", st.Count(Countries))
	}
}
