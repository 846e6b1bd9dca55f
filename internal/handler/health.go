package handler

import (
	"net/http"
)

// Health reports liveness without touching the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
