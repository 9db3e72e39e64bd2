package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"weather-dashboard/internal/api/dto"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
	"weather-dashboard/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// Validation failures become 422 with the machine-readable code; anything
// else is an internal error.
func writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: ve.Message, Code: string(ve.Code)})
		return
	}

	log.Printf("submit failed: req_id=%s path=%s err=%v", obs.RequestID(r.Context()), r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads exactly one JSON object from the body and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// wait blocks on b when the client asked for ?wait=1.
func wait(r *http.Request, b *services.Batch) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if ok {
		b.Wait()
	}
	return ok
}
