package services

import (
	"context"
	"errors"
	"testing"
	"weather-dashboard/internal/adapters/mock"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/domain"
)

var (
	paris = domain.City{ID: 2988507, Name: "Paris", Country: "France", Lat: 48.85341, Lon: 2.3488}
	parma = domain.City{ID: 3171457, Name: "Parma", Country: "Italy", Lat: 44.79935, Lon: 10.32618}
	oslo  = domain.City{ID: 3143244, Name: "Oslo", Country: "Norway", Lat: 59.91273, Lon: 10.74609}
)

func newTestField(searcher *mock.CitySearcher, opts ...AutocompleteOption) (*Autocomplete, *mock.Scheduler, *board.Board) {
	sched := mock.NewScheduler()
	b := board.New()
	opts = append([]AutocompleteOption{WithScheduler(sched.Schedule)}, opts...)
	return NewAutocomplete("city", searcher, b.Field("city"), opts...), sched, b
}

func TestAutocomplete_DebouncesSearch(t *testing.T) {
	searcher := mock.NewCitySearcher(paris, parma, oslo)
	field, sched, b := newTestField(searcher)

	field.Input("P")
	field.Input("Pa")
	field.Input("Par")

	if n := len(searcher.Queries()); n != 0 {
		t.Fatalf("no search may start before the debounce delay, got %d", n)
	}
	if n := sched.Pending(); n != 1 {
		t.Fatalf("each keystroke must replace the previous timer, %d pending", n)
	}
	if field.State() != AutocompleteTyping {
		t.Fatalf("expected typing, got %s", field.State())
	}

	if n := sched.Fire(SearchDebounce); n != 1 {
		t.Fatalf("expected exactly one live debounce timer, got %d", n)
	}

	if q := searcher.Queries(); len(q) != 1 || q[0] != "Par" {
		t.Fatalf("expected a single query for the last text, got %v", q)
	}
	if field.State() != AutocompleteSuggesting {
		t.Fatalf("expected suggesting, got %s", field.State())
	}
	if got := b.Snapshot().Fields["city"].Suggestions; len(got) != 2 || got[0].ID != paris.ID {
		t.Fatalf("unexpected rendered suggestions: %+v", got)
	}
}

func TestAutocomplete_BlankInputHidesSuggestions(t *testing.T) {
	searcher := mock.NewCitySearcher(paris)
	field, sched, b := newTestField(searcher)

	field.Input("Pa")
	sched.Fire(SearchDebounce)
	field.Input("   ")

	if n := sched.Fire(SearchDebounce); n != 0 {
		t.Fatalf("blank input must not schedule a search")
	}
	if len(searcher.Queries()) != 1 {
		t.Fatalf("expected only the first query, got %v", searcher.Queries())
	}
	if field.State() != AutocompleteIdle || len(field.Suggestions()) != 0 {
		t.Fatalf("expected idle with no suggestions, got %s %v", field.State(), field.Suggestions())
	}
	if len(b.Snapshot().Fields["city"].Suggestions) != 0 {
		t.Fatalf("suggestions still rendered")
	}
}

func TestAutocomplete_SelectStoresPendingSelection(t *testing.T) {
	searcher := mock.NewCitySearcher(paris, parma)

	var picked []domain.City
	field, sched, b := newTestField(searcher, OnSelect(func(c domain.City) { picked = append(picked, c) }))

	field.Input("par")
	sched.Fire(SearchDebounce)

	city, err := field.Select(1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if city.ID != parma.ID || field.Value() != "Parma" {
		t.Fatalf("unexpected selection %+v value=%q", city, field.Value())
	}

	sel, ok := field.Pending()
	if !ok || sel != domain.SelectionOf(parma) {
		t.Fatalf("unexpected pending selection %+v ok=%t", sel, ok)
	}
	if field.State() != AutocompleteSelected || len(field.Suggestions()) != 0 {
		t.Fatalf("expected selected with hidden suggestions")
	}
	if len(picked) != 1 || picked[0].ID != parma.ID {
		t.Fatalf("select callback not invoked: %+v", picked)
	}
	if f := b.Snapshot().Fields["city"]; f.Value != "Parma" || len(f.Suggestions) != 0 {
		t.Fatalf("unexpected field surface %+v", f)
	}

	field.Input("Parm")
	if _, ok := field.Pending(); ok {
		t.Fatalf("a keystroke must discard the pending selection")
	}
}

func TestAutocomplete_SelectOutOfRange(t *testing.T) {
	field, _, _ := newTestField(mock.NewCitySearcher())
	if _, err := field.Select(0); !errors.Is(err, ErrNoSuggestion) {
		t.Fatalf("expected ErrNoSuggestion, got %v", err)
	}
}

// gatedSearcher blocks every search until release is closed.
type gatedSearcher struct {
	started chan string
	release chan struct{}
	results []domain.City
}

func (g *gatedSearcher) SearchCities(ctx context.Context, query string, limit int) ([]domain.City, error) {
	g.started <- query
	<-g.release
	return g.results, nil
}

func TestAutocomplete_DiscardsStaleResults(t *testing.T) {
	searcher := &gatedSearcher{started: make(chan string, 1), release: make(chan struct{}), results: []domain.City{paris}}
	sched := mock.NewScheduler()
	b := board.New()
	field := NewAutocomplete("city", searcher, b.Field("city"), WithScheduler(sched.Schedule))

	field.Input("Par")

	done := make(chan struct{})
	go func() {
		sched.Fire(SearchDebounce)
		close(done)
	}()
	<-searcher.started

	// The user keeps typing while the old request is in flight.
	field.Input("Pari")
	close(searcher.release)
	<-done

	if len(field.Suggestions()) != 0 {
		t.Fatalf("stale results rendered: %+v", field.Suggestions())
	}
	if len(b.Snapshot().Fields["city"].Suggestions) != 0 {
		t.Fatalf("stale results reached the surface")
	}
	if field.State() != AutocompleteTyping {
		t.Fatalf("expected typing, got %s", field.State())
	}
}

func TestAutocomplete_SearchErrorKeepsSuggestions(t *testing.T) {
	searcher := mock.NewCitySearcher(paris, parma)
	field, sched, _ := newTestField(searcher)

	field.Input("Pa")
	sched.Fire(SearchDebounce)

	searcher.Fail(errors.New("network down"))
	field.Input("Par")
	sched.Fire(SearchDebounce)

	if got := field.Suggestions(); len(got) != 2 {
		t.Fatalf("failed search must leave suggestions unchanged, got %+v", got)
	}
}

func TestAutocomplete_BlurHidesAfterGrace(t *testing.T) {
	field, sched, b := newTestField(mock.NewCitySearcher(paris))

	field.Input("Pa")
	sched.Fire(SearchDebounce)
	field.Blur()

	if len(field.Suggestions()) != 1 {
		t.Fatalf("suggestions must survive until the grace delay")
	}
	if n := sched.Fire(BlurGrace); n != 1 {
		t.Fatalf("expected one blur timer, got %d", n)
	}
	if len(field.Suggestions()) != 0 || len(b.Snapshot().Fields["city"].Suggestions) != 0 {
		t.Fatalf("suggestions still visible after blur")
	}
}

func TestAutocomplete_Reset(t *testing.T) {
	field, sched, b := newTestField(mock.NewCitySearcher(paris))

	field.Input("Pa")
	sched.Fire(SearchDebounce)
	_, _ = field.Select(0)
	field.SetError("oops")
	field.Reset()

	if field.Value() != "" || field.State() != AutocompleteIdle {
		t.Fatalf("unexpected field after reset: value=%q state=%s", field.Value(), field.State())
	}
	if _, ok := field.Pending(); ok {
		t.Fatalf("reset must clear the pending selection")
	}
	if f := b.Snapshot().Fields["city"]; f.Value != "" || f.Error != "" {
		t.Fatalf("unexpected surface after reset: %+v", f)
	}
}
