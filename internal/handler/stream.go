package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pulsefeed-dev/pulsefeed/internal/logger"
)

// StreamPosts serves the live post event stream over SSE. Events:
// hello on connect, post for created or mutated posts, postDeleted
// with the removed id.
func (h *Handler) StreamPosts(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				// hub pruned us as a slow consumer
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				logger.Log.Error("failed to marshal sse payload", "event", ev.Name, "err", err.Error())
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
