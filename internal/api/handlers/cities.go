package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"weather-dashboard/internal/api/dto"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
	"weather-dashboard/internal/ports"
	"weather-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxSearchLimit = 20

type CityHandler struct {
	Dashboard *services.Dashboard
	// Add-city form and main-city modal inputs.
	Extra *services.Autocomplete
	Main  *services.Autocomplete

	Searcher    ports.CitySearcher
	SearchLimit int
}

// Add submits the add-city form.
func (h *CityHandler) Add(w http.ResponseWriter, r *http.Request) {
	b, err := h.Dashboard.SubmitExtraCity(r.Context(), h.Extra)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	wait(r, b)

	writeJSON(w, r, http.StatusCreated, h.Dashboard.Snapshot())
}

func (h *CityHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "id must be an integer")
		return
	}

	if !h.Dashboard.RemoveExtraCity(r.Context(), id) {
		writeError(w, r, http.StatusNotFound, "city not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetMain submits the main-city modal.
func (h *CityHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	b, err := h.Dashboard.SubmitMainCity(r.Context(), h.Main)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	wait(r, b)

	writeJSON(w, r, http.StatusOK, h.Dashboard.Snapshot())
}

func (h *CityHandler) OpenMainModal(w http.ResponseWriter, r *http.Request) {
	h.Dashboard.OpenMainCityModal()
	w.WriteHeader(http.StatusNoContent)
}

// Search queries the geocoder directly, bypassing debounce and field state.
func (h *CityHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := h.SearchLimit
	if limit <= 0 {
		limit = ports.DefaultSearchLimit
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = n
	}

	cities, err := h.Searcher.SearchCities(r.Context(), q, limit)
	if err != nil {
		log.Printf("search cities failed: req_id=%s q=%q err=%v", obs.RequestID(r.Context()), q, err)

		var he *domain.HTTPError
		if errors.As(err, &he) {
			writeError(w, r, http.StatusBadGateway, "geocoding service error")
			return
		}
		writeError(w, r, http.StatusBadGateway, "geocoding service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SearchCitiesResponse{
		Query:  strings.TrimSpace(q),
		Cities: dto.NewCityResponses(cities),
	})
}
