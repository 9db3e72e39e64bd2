package api

import (
	"net/http"
	"weather-dashboard/internal/api/handlers"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/ports"
	"weather-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
)

// Fields is keyed by services.FieldCity and services.FieldModalCity.
type RouterDeps struct {
	Dashboard    *services.Dashboard
	Board        *board.Board
	Fields       map[string]*services.Autocomplete
	Searcher     ports.CitySearcher
	SearchLimit  int
	StateBackend string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	health := &handlers.HealthHandler{StateBackend: deps.StateBackend}
	dash := &handlers.DashboardHandler{Dashboard: deps.Dashboard, Board: deps.Board}
	fields := &handlers.FieldHandler{Fields: deps.Fields}
	cities := &handlers.CityHandler{
		Dashboard:   deps.Dashboard,
		Extra:       deps.Fields[services.FieldCity],
		Main:        deps.Fields[services.FieldModalCity],
		Searcher:    deps.Searcher,
		SearchLimit: deps.SearchLimit,
	}

	r.Get("/health", health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", dash.Snapshot)
		r.Get("/events", dash.Events)
		r.Get("/state", dash.State)
		r.Post("/refresh", dash.Refresh)
		r.Post("/locate", dash.Locate)
		r.Post("/geolocation", dash.Geolocation)

		r.Get("/cities/search", cities.Search)
		r.Post("/cities", cities.Add)
		r.Delete("/cities/{id}", cities.Remove)
		r.Post("/main-city", cities.SetMain)
		r.Post("/main-city/modal", cities.OpenMainModal)

		r.Route("/fields/{field}", func(r chi.Router) {
			r.Get("/", fields.Get)
			r.Post("/input", fields.Input)
			r.Post("/select", fields.Select)
			r.Post("/blur", fields.Blur)
		})
	})

	return r
}
