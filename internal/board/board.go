// Package board keeps the rendered dashboard in memory so any front end can
// draw it: the HTTP API serves snapshots and the terminal UI repaints from them.
package board

import (
	"context"
	"sync"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/ports"
)

// Main panel id in snapshots. Extra city cards use their city id.
const MainCardID int64 = 0

type Status struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type Card struct {
	ID       int64                 `json:"id"`
	Title    string                `json:"title"`
	City     *domain.City          `json:"city,omitempty"`
	Status   Status                `json:"status"`
	Forecast []ports.ForecastEntry `json:"forecast"`
}

type Field struct {
	Name        string        `json:"name"`
	Value       string        `json:"value"`
	Error       string        `json:"error"`
	Suggestions []domain.City `json:"suggestions"`
}

// Snapshot is an immutable copy of everything on screen.
type Snapshot struct {
	Version   uint64           `json:"version"`
	Main      Card             `json:"main"`
	Cities    []Card           `json:"cities"`
	ModalOpen bool             `json:"modal_open"`
	Fields    map[string]Field `json:"fields"`
}

// Board implements ports.DashboardView and hands out field surfaces.
// It is safe for concurrent use.
type Board struct {
	mu      sync.Mutex
	version uint64
	main    *Card
	cities  []*Card
	modal   bool
	fields  map[string]*Field
	subs    map[chan Snapshot]struct{}
}

func New() *Board {
	return &Board{
		main:   &Card{ID: MainCardID, Status: Status{Kind: ports.StatusIdle.String()}},
		fields: make(map[string]*Field),
		subs:   make(map[chan Snapshot]struct{}),
	}
}

func (b *Board) MainCard() ports.CardSurface {
	return &cardSurface{board: b, card: b.main}
}

func (b *Board) SetMainTitle(title string) {
	b.update(func() { b.main.Title = title })
}

func (b *Board) ShowMainCityModal() {
	b.update(func() { b.modal = true })
}

func (b *Board) HideMainCityModal() {
	b.update(func() { b.modal = false })
}

func (b *Board) AddCityCard(city domain.City) ports.CardSurface {
	c := city
	card := &Card{
		ID:     city.ID,
		Title:  city.DisplayName(),
		City:   &c,
		Status: Status{Kind: ports.StatusIdle.String()},
	}
	b.update(func() { b.cities = append(b.cities, card) })
	return &cardSurface{board: b, card: card}
}

func (b *Board) RemoveCityCard(id int64) {
	b.update(func() {
		kept := b.cities[:0]
		for _, c := range b.cities {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		for i := len(kept); i < len(b.cities); i++ {
			b.cities[i] = nil
		}
		b.cities = kept
	})
}

// Field returns the surface of the named input, creating it on first use.
func (b *Board) Field(name string) ports.AutocompleteSurface {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.fields[name]; !ok {
		b.fields[name] = &Field{Name: name}
	}
	return &fieldSurface{board: b, name: name}
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Subscribe delivers a snapshot after every change until ctx is done.
// A slow reader only ever sees the latest snapshot; intermediate ones are dropped.
func (b *Board) Subscribe(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

func (b *Board) update(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fn()
	b.version++

	if len(b.subs) == 0 {
		return
	}
	snap := b.snapshotLocked()
	for ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (b *Board) snapshotLocked() Snapshot {
	s := Snapshot{
		Version:   b.version,
		Main:      copyCard(b.main),
		Cities:    make([]Card, 0, len(b.cities)),
		ModalOpen: b.modal,
		Fields:    make(map[string]Field, len(b.fields)),
	}
	for _, c := range b.cities {
		s.Cities = append(s.Cities, copyCard(c))
	}
	for name, f := range b.fields {
		cp := *f
		cp.Suggestions = append([]domain.City{}, f.Suggestions...)
		s.Fields[name] = cp
	}
	return s
}

func copyCard(c *Card) Card {
	out := *c
	out.Forecast = append([]ports.ForecastEntry{}, c.Forecast...)
	if c.City != nil {
		city := *c.City
		out.City = &city
	}
	return out
}

type cardSurface struct {
	board *Board
	card  *Card
}

// Updates to a removed card are kept on the detached record and never shown.
func (s *cardSurface) SetStatus(kind ports.StatusKind, text string) {
	s.board.update(func() { s.card.Status = Status{Kind: kind.String(), Text: text} })
}

func (s *cardSurface) SetForecastEntries(entries []ports.ForecastEntry) {
	cp := append([]ports.ForecastEntry(nil), entries...)
	s.board.update(func() { s.card.Forecast = cp })
}

type fieldSurface struct {
	board *Board
	name  string
}

func (s *fieldSurface) SetValue(value string) {
	s.board.update(func() { s.board.fields[s.name].Value = value })
}

func (s *fieldSurface) SetError(text string) {
	s.board.update(func() { s.board.fields[s.name].Error = text })
}

func (s *fieldSurface) RenderSuggestions(items []domain.City) {
	cp := append([]domain.City(nil), items...)
	s.board.update(func() { s.board.fields[s.name].Suggestions = cp })
}
