package handlers

import (
	"errors"
	"net/http"
	"weather-dashboard/internal/api/dto"
	"weather-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
)

// FieldHandler forwards input events of the named autocomplete fields.
type FieldHandler struct {
	Fields map[string]*services.Autocomplete
}

func (h *FieldHandler) field(w http.ResponseWriter, r *http.Request) (*services.Autocomplete, bool) {
	name := chi.URLParam(r, "field")
	f, ok := h.Fields[name]
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown field "+name)
		return nil, false
	}
	return f, true
}

// Input records a keystroke. Suggestions arrive later on the event stream.
func (h *FieldHandler) Input(w http.ResponseWriter, r *http.Request) {
	f, ok := h.field(w, r)
	if !ok {
		return
	}

	var req dto.InputRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	f.Input(req.Value)
	writeJSON(w, r, http.StatusAccepted, fieldResponse(f))
}

func (h *FieldHandler) Select(w http.ResponseWriter, r *http.Request) {
	f, ok := h.field(w, r)
	if !ok {
		return
	}

	var req dto.SelectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Index == nil {
		writeError(w, r, http.StatusBadRequest, "index is required")
		return
	}

	if _, err := f.Select(*req.Index); err != nil {
		if errors.Is(err, services.ErrNoSuggestion) {
			writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Code: "no_suggestion"})
			return
		}
		writeSubmitError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, fieldResponse(f))
}

func (h *FieldHandler) Blur(w http.ResponseWriter, r *http.Request) {
	f, ok := h.field(w, r)
	if !ok {
		return
	}

	f.Blur()
	w.WriteHeader(http.StatusNoContent)
}

func (h *FieldHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.field(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, fieldResponse(f))
}

func fieldResponse(f *services.Autocomplete) dto.FieldResponse {
	_, selected := f.Pending()
	return dto.FieldResponse{
		Name:        f.Name(),
		Value:       f.Value(),
		State:       f.State().String(),
		Suggestions: dto.NewCityResponses(f.Suggestions()),
		Selected:    selected,
	}
}
