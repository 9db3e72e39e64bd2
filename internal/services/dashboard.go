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
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	LocateTimeout               = 10 * time.Second
	DefaultMaxConcurrentFetches = 8
)

// Batch tracks the renders started by one dashboard operation.
type Batch struct {
	g errgroup.Group
}

// Wait blocks until every render of the batch has finished. A nil Batch is done.
func (b *Batch) Wait() {
	if b == nil {
		return
	}
	_ = b.g.Wait()
}

type DashboardDeps struct {
	Store    *StateStore
	Renderer *ForecastRenderer
	// Nil means the environment cannot locate the user.
	Locator ports.Locator
	View    ports.DashboardView
	Catalog *i18n.Catalog

	MaxConcurrentFetches int
}

type cityCard struct {
	city    domain.City
	surface ports.CardSurface
}

// Dashboard owns the application state and the list of rendered location cards.
// The state is only changed under mu and every change is persisted before
// the lock is released. Network calls never run under mu.
type Dashboard struct {
	store    *StateStore
	renderer *ForecastRenderer
	locator  ports.Locator
	view     ports.DashboardView
	catalog  *i18n.Catalog
	fetches  *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state domain.AppState
	cards []cityCard
}

func NewDashboard(deps DashboardDeps) (*Dashboard, error) {
	if deps.Store == nil || deps.Renderer == nil || deps.View == nil {
		return nil, errors.New("new dashboard: store, renderer and view are required")
	}

	catalog := deps.Catalog
	if catalog == nil {
		catalog = i18n.Default()
	}
	limit := deps.MaxConcurrentFetches
	if limit <= 0 {
		limit = DefaultMaxConcurrentFetches
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		store:    deps.Store,
		renderer: deps.Renderer,
		locator:  deps.Locator,
		view:     deps.View,
		catalog:  catalog,
		fetches:  semaphore.NewWeighted(int64(limit)),
		ctx:      ctx,
		cancel:   cancel,
		state:    domain.DefaultAppState(),
	}, nil
}

// Close cancels renders and geolocation requests still in flight.
func (d *Dashboard) Close() {
	d.cancel()
}

// Init restores the persisted state and starts rendering every location.
func (d *Dashboard) Init(ctx context.Context) *Batch {
	st := d.store.Load(ctx)

	b := &Batch{}

	d.mu.Lock()
	d.state = st
	d.mu.Unlock()

	switch {
	case st.UseGeolocation:
		d.locateInto(b)
	case st.MainCity != nil:
		d.renderMainCityInto(b)
	default:
		d.view.MainCard().SetStatus(ports.StatusIdle, d.catalog.ChooseMainCity)
		d.view.ShowMainCityModal()
	}

	d.mu.Lock()
	targets := make([]RenderTarget, 0, len(st.ExtraCities))
	for _, c := range st.ExtraCities {
		targets = append(targets, d.addCardLocked(c))
	}
	d.mu.Unlock()

	for _, t := range targets {
		d.render(b, t)
	}

	log.Printf("dashboard init use_geolocation=%t main_city=%t extra_cities=%d", st.UseGeolocation, st.MainCity != nil, len(st.ExtraCities))
	return b
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() domain.AppState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// SubmitExtraCity adds the city selected in field as a new card.
// Validation problems are shown on the field and returned as *domain.ValidationError.
func (d *Dashboard) SubmitExtraCity(ctx context.Context, field *Autocomplete) (*Batch, error) {
	city, err := d.selectedCity(field)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.state.HasExtraCity(city.ID) {
		d.mu.Unlock()
		return nil, d.reject(field, domain.ValidationDuplicateCity, d.catalog.AlreadyAdded)
	}
	if d.state.IsMainCity(city.ID) {
		d.mu.Unlock()
		return nil, d.reject(field, domain.ValidationMainCityDuplicate, d.catalog.AlreadyMain)
	}

	next := d.state.Clone()
	next.ExtraCities = append(next.ExtraCities, city)
	d.commitLocked(ctx, next)
	target := d.addCardLocked(city)
	d.mu.Unlock()

	field.Reset()

	b := &Batch{}
	d.render(b, target)
	return b, nil
}

// RemoveExtraCity drops a city and its card. It reports whether the city was listed.
func (d *Dashboard) RemoveExtraCity(ctx context.Context, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := d.state.HasExtraCity(id)
	d.commitLocked(ctx, d.state.WithoutExtraCity(id))

	kept := d.cards[:0]
	for _, c := range d.cards {
		if c.city.ID != id {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	d.view.RemoveCityCard(id)

	return found
}

// SubmitMainCity switches the main panel to the city selected in field and
// turns geolocation off.
func (d *Dashboard) SubmitMainCity(ctx context.Context, field *Autocomplete) (*Batch, error) {
	city, err := d.selectedCity(field)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	next := d.state.Clone()
	next.UseGeolocation = false
	next.MainCity = &city
	d.commitLocked(ctx, next)
	d.mu.Unlock()

	d.view.HideMainCityModal()
	field.Reset()

	b := &Batch{}
	d.renderMainCityInto(b)
	return b, nil
}

// Locate asks the locator for the current position and renders it in the
// main panel. Without a locator the unsupported flow runs immediately.
func (d *Dashboard) Locate(ctx context.Context) *Batch {
	b := &Batch{}
	d.locateInto(b)
	return b
}

func (d *Dashboard) locateInto(b *Batch) {
	main := d.view.MainCard()
	d.view.SetMainTitle(d.catalog.CurrentLocation)
	main.SetStatus(ports.StatusLoading, d.catalog.Locating)
	main.SetForecastEntries(nil)

	if d.locator == nil {
		d.GeolocationFailed(d.ctx, &domain.GeolocationError{Reason: domain.GeolocationUnsupported})
		return
	}

	b.g.Go(func() error {
		ctx, cancel := context.WithTimeout(d.ctx, LocateTimeout)
		defer cancel()

		at, err := d.locator.Locate(ctx)
		if err != nil {
			d.GeolocationFailed(d.ctx, err)
			return nil
		}
		d.usePositionInto(d.ctx, b, at)
		return nil
	})
}

// UsePosition renders the forecast for a position obtained by the caller and
// remembers that the main panel follows geolocation.
func (d *Dashboard) UsePosition(ctx context.Context, at domain.Coordinates) *Batch {
	d.view.SetMainTitle(d.catalog.CurrentLocation)

	b := &Batch{}
	d.usePositionInto(ctx, b, at)
	return b
}

func (d *Dashboard) usePositionInto(ctx context.Context, b *Batch, at domain.Coordinates) {
	d.mu.Lock()
	next := d.state.Clone()
	next.UseGeolocation = true
	next.MainCity = nil
	d.commitLocked(ctx, next)
	d.mu.Unlock()

	main := d.view.MainCard()
	d.render(b, RenderTarget{At: at, Status: main, Forecast: main})
}

// GeolocationFailed falls back to manual selection of the main city.
func (d *Dashboard) GeolocationFailed(ctx context.Context, err error) {
	log.Printf("geolocation failed err=%v", err)

	text := d.catalog.GeoFailed
	var ge *domain.GeolocationError
	if errors.As(err, &ge) && ge.Reason == domain.GeolocationUnsupported {
		text = d.catalog.GeoUnsupported
	}

	d.mu.Lock()
	next := d.state.Clone()
	next.UseGeolocation = false
	d.commitLocked(ctx, next)
	d.mu.Unlock()

	main := d.view.MainCard()
	main.SetForecastEntries(nil)
	main.SetStatus(ports.StatusError, text)
	d.view.ShowMainCityModal()
}

// RenderMainCity re-renders the stored main city.
func (d *Dashboard) RenderMainCity(ctx context.Context) *Batch {
	b := &Batch{}
	d.renderMainCityInto(b)
	return b
}

func (d *Dashboard) renderMainCityInto(b *Batch) {
	d.mu.Lock()
	var city *domain.City
	if d.state.MainCity != nil {
		c := *d.state.MainCity
		city = &c
	}
	d.mu.Unlock()

	main := d.view.MainCard()
	if city == nil {
		main.SetForecastEntries(nil)
		main.SetStatus(ports.StatusError, d.catalog.NoMainCity)
		return
	}

	d.view.SetMainTitle(city.DisplayName())
	d.render(b, RenderTarget{At: city.Coordinates(), Status: main, Forecast: main})
}

// OpenMainCityModal lets the user replace the main location by hand.
func (d *Dashboard) OpenMainCityModal() {
	d.view.ShowMainCityModal()
}

// Refresh re-renders the main location and every displayed card.
func (d *Dashboard) Refresh(ctx context.Context) *Batch {
	d.mu.Lock()
	useGeo := d.state.UseGeolocation
	hasMain := d.state.MainCity != nil
	targets := make([]RenderTarget, 0, len(d.cards))
	for _, c := range d.cards {
		city, ok := d.state.ExtraCity(c.city.ID)
		if !ok {
			continue
		}
		targets = append(targets, RenderTarget{At: city.Coordinates(), Status: c.surface, Forecast: c.surface})
	}
	d.mu.Unlock()

	b := &Batch{}
	switch {
	case useGeo:
		d.locateInto(b)
	case hasMain:
		d.renderMainCityInto(b)
	}
	for _, t := range targets {
		d.render(b, t)
	}
	return b
}

func (d *Dashboard) selectedCity(field *Autocomplete) (domain.City, error) {
	name := strings.TrimSpace(field.Value())
	if name == "" {
		return domain.City{}, d.reject(field, domain.ValidationEmptyName, d.catalog.EnterCityName)
	}
	sel, ok := field.Pending()
	if !ok {
		return domain.City{}, d.reject(field, domain.ValidationNoSelection, d.catalog.SelectFromList)
	}
	return sel.City(name), nil
}

func (d *Dashboard) reject(field *Autocomplete, code domain.ValidationCode, msg string) error {
	field.SetError(msg)
	return &domain.ValidationError{Code: code, Message: msg}
}

// Callers hold mu.
func (d *Dashboard) commitLocked(ctx context.Context, next domain.AppState) {
	d.state = next
	d.store.Save(ctx, next)
}

// Callers hold mu.
func (d *Dashboard) addCardLocked(city domain.City) RenderTarget {
	surface := d.view.AddCityCard(city)
	d.cards = append(d.cards, cityCard{city: city, surface: surface})
	return RenderTarget{At: city.Coordinates(), Status: surface, Forecast: surface}
}

func (d *Dashboard) render(b *Batch, t RenderTarget) {
	b.g.Go(func() error {
		if err := d.fetches.Acquire(d.ctx, 1); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		defer d.fetches.Release(1)

		_ = d.renderer.Render(d.ctx, t)
		return nil
	})
}
