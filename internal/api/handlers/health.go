package handlers

import (
	"net/http"
)

type HealthHandler struct {
	StateBackend string
}

// Health is a liveness check. It also names the state backend in use.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{
		"status":        "ok",
		"state_backend": h.StateBackend,
	}
	writeJSON(w, r, http.StatusOK, res)
}
