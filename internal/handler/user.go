package handler

import (
	"net/http"
	"strconv"

	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

// SearchUsers matches display names against the q parameter. Queries
// under two characters return an empty list.
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := 0 // service applies its default
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	users, err := h.user.Search(q, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, users)
}

// UserProfile serves a public profile by display name, case-insensitively.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.user.Profile(displayNameParam(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, user)
}

// UpdateMe replaces the authenticated user's bio.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	type bodyJson struct {
		Bio string `json:"bio"`
	}
	var body bodyJson
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.user.UpdateBio(user.Id, body.Bio)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, updated)
}
