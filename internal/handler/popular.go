package handler

import (
	"net/http"

	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

// PopularFeed serves posts ranked by engagement within the requested
// range (day or week).
func (h *Handler) PopularFeed(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")

	page, err := h.popular.ListPopular(rng, parseLimit(r), parseRankedCursor(r), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}
