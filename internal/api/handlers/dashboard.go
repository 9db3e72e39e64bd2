package handlers

import (
	"log"
	"net/http"
	"weather-dashboard/internal/api/dto"
	"weather-dashboard/internal/board"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
	"weather-dashboard/internal/services"
)

type DashboardHandler struct {
	Dashboard *services.Dashboard
	Board     *board.Board
}

// Snapshot returns everything currently on screen.
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Board.Snapshot())
}

// State returns the persisted application state.
func (h *DashboardHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Dashboard.Snapshot())
}

// Events streams a board snapshot after every change until the client goes away.
func (h *DashboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "stream unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for snap := range h.Board.Subscribe(r.Context()) {
		if err := writeEvent(w, "snapshot", snap); err != nil {
			log.Printf("event stream closed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
			return
		}
		flusher.Flush()
	}
}

func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	b := h.Dashboard.Refresh(r.Context())
	if wait(r, b) {
		writeJSON(w, r, http.StatusOK, h.Board.Snapshot())
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

// Locate runs the server-side locator for the main panel.
func (h *DashboardHandler) Locate(w http.ResponseWriter, r *http.Request) {
	b := h.Dashboard.Locate(r.Context())
	if wait(r, b) {
		writeJSON(w, r, http.StatusOK, h.Board.Snapshot())
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "locating"})
}

// Geolocation accepts the outcome of a browser geolocation request.
func (h *DashboardHandler) Geolocation(w http.ResponseWriter, r *http.Request) {
	var req dto.GeolocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Error != "" {
		reason := domain.GeolocationReason(req.Error)
		switch reason {
		case domain.GeolocationDenied, domain.GeolocationUnsupported, domain.GeolocationTimeout, domain.GeolocationUnavailable:
		default:
			writeError(w, r, http.StatusBadRequest, "unknown geolocation error "+req.Error)
			return
		}
		h.Dashboard.GeolocationFailed(r.Context(), &domain.GeolocationError{Reason: reason})
		writeJSON(w, r, http.StatusOK, h.Dashboard.Snapshot())
		return
	}

	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	b := h.Dashboard.UsePosition(r.Context(), domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon})
	wait(r, b)
	writeJSON(w, r, http.StatusOK, h.Dashboard.Snapshot())
}
