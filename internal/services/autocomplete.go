package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/ports"

	"go.uber.org/atomic"
)

const (
	SearchDebounce = 300 * time.Millisecond
	BlurGrace      = 150 * time.Millisecond
	SearchTimeout  = 10 * time.Second
)

// Names of the dashboard's two inputs: the add-city form and the main-city modal.
const (
	FieldCity      = "city"
	FieldModalCity = "modal-city"
)

var ErrNoSuggestion = errors.New("no such suggestion")

type AutocompleteState int

const (
	AutocompleteIdle AutocompleteState = iota
	AutocompleteTyping
	AutocompleteSearching
	AutocompleteSuggesting
	AutocompleteSelected
)

func (s AutocompleteState) String() string {
	switch s {
	case AutocompleteTyping:
		return "typing"
	case AutocompleteSearching:
		return "searching"
	case AutocompleteSuggesting:
		return "suggesting"
	case AutocompleteSelected:
		return "selected"
	default:
		return "idle"
	}
}

func afterFunc(d time.Duration, f func()) ports.Timer { return time.AfterFunc(d, f) }

type AutocompleteOption func(*Autocomplete)

func WithScheduler(s ports.Scheduler) AutocompleteOption {
	return func(a *Autocomplete) { a.schedule = s }
}

func WithSearchLimit(limit int) AutocompleteOption {
	return func(a *Autocomplete) {
		if limit > 0 {
			a.limit = limit
		}
	}
}

// OnSelect registers a callback invoked after a suggestion is picked.
func OnSelect(fn func(domain.City)) AutocompleteOption {
	return func(a *Autocomplete) { a.onSelect = fn }
}

// Autocomplete drives one search field: debounced lookups, a suggestion list
// and the selection a later submit will use.
//
// Every keystroke, selection and reset bumps seq. A search only renders its
// results if seq has not moved since the keystroke that scheduled it.
//
// Surface methods are called with the field lock held and must not call back
// into the Autocomplete.
type Autocomplete struct {
	name     string
	searcher ports.CitySearcher
	surface  ports.AutocompleteSurface
	limit    int
	schedule ports.Scheduler
	onSelect func(domain.City)

	seq *atomic.Uint64

	mu          sync.Mutex
	value       string
	state       AutocompleteState
	suggestions []domain.City
	pending     *domain.PendingSelection
	timer       ports.Timer
}

func NewAutocomplete(name string, searcher ports.CitySearcher, surface ports.AutocompleteSurface, opts ...AutocompleteOption) *Autocomplete {
	a := &Autocomplete{
		name:     name,
		searcher: searcher,
		surface:  surface,
		limit:    ports.DefaultSearchLimit,
		schedule: afterFunc,
		seq:      atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Autocomplete) Name() string { return a.name }

// Input records the field's new text. Any previous selection is forgotten and
// a search is scheduled after the debounce delay unless the text is blank.
func (a *Autocomplete) Input(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.value = value
	a.pending = nil
	a.stopTimer()
	gen := a.seq.Inc()

	a.surface.SetValue(value)
	a.surface.SetError("")

	query := strings.TrimSpace(value)
	if query == "" {
		a.state = AutocompleteIdle
		a.suggestions = nil
		a.surface.RenderSuggestions(nil)
		return
	}

	a.state = AutocompleteTyping
	a.timer = a.schedule(SearchDebounce, func() { a.search(gen, query) })
}

func (a *Autocomplete) search(gen uint64, query string) {
	if a.seq.Load() != gen {
		return
	}

	a.mu.Lock()
	if a.seq.Load() != gen {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.state = AutocompleteSearching
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), SearchTimeout)
	defer cancel()

	results, err := a.searcher.SearchCities(ctx, query, a.limit)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.seq.Load() != gen {
		log.Printf("autocomplete field=%s query=%q discarded stale results", a.name, query)
		return
	}
	if err != nil {
		log.Printf("autocomplete field=%s query=%q err=%v", a.name, query, err)
		if len(a.suggestions) > 0 {
			a.state = AutocompleteSuggesting
		} else {
			a.state = AutocompleteTyping
		}
		return
	}

	a.suggestions = append([]domain.City(nil), results...)
	if len(a.suggestions) == 0 {
		a.state = AutocompleteTyping
		a.surface.RenderSuggestions(nil)
		return
	}
	a.state = AutocompleteSuggesting
	a.surface.RenderSuggestions(a.copySuggestions())
}

// Callers hold mu.
func (a *Autocomplete) copySuggestions() []domain.City {
	return append([]domain.City(nil), a.suggestions...)
}

// Select picks the index-th visible suggestion.
func (a *Autocomplete) Select(index int) (domain.City, error) {
	a.mu.Lock()
	if index < 0 || index >= len(a.suggestions) {
		n := len(a.suggestions)
		a.mu.Unlock()
		return domain.City{}, fmt.Errorf("select suggestion %d of %d: %w", index, n, ErrNoSuggestion)
	}

	city := a.suggestions[index]
	sel := domain.SelectionOf(city)

	a.stopTimer()
	a.seq.Inc()
	a.value = city.Name
	a.pending = &sel
	a.suggestions = nil
	a.state = AutocompleteSelected

	a.surface.SetValue(city.Name)
	a.surface.RenderSuggestions(nil)
	a.surface.SetError("")

	cb := a.onSelect
	a.mu.Unlock()

	if cb != nil {
		cb(city)
	}
	return city, nil
}

// Blur hides the suggestions after a short grace period so that a click on
// a suggestion can still land.
func (a *Autocomplete) Blur() {
	a.schedule(BlurGrace, func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.suggestions = nil
		if a.state == AutocompleteSuggesting {
			a.state = AutocompleteTyping
		}
		a.surface.RenderSuggestions(nil)
	})
}

// Reset empties the field after a successful submit.
func (a *Autocomplete) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopTimer()
	a.seq.Inc()
	a.value = ""
	a.pending = nil
	a.suggestions = nil
	a.state = AutocompleteIdle

	a.surface.SetValue("")
	a.surface.SetError("")
	a.surface.RenderSuggestions(nil)
}

// SetError shows an inline message under the field.
func (a *Autocomplete) SetError(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.surface.SetError(text)
}

func (a *Autocomplete) Value() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

func (a *Autocomplete) Pending() (domain.PendingSelection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return domain.PendingSelection{}, false
	}
	return *a.pending, true
}

func (a *Autocomplete) State() AutocompleteState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Autocomplete) Suggestions() []domain.City {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copySuggestions()
}

// Generation is the number of keystrokes, selections and resets seen so far.
func (a *Autocomplete) Generation() uint64 { return a.seq.Load() }

func (a *Autocomplete) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
