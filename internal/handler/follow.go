package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

func displayNameParam(r *http.Request) string {
	return chi.URLParam(r, "displayName")
}

// AuthorFeed serves one user's posts, newest first.
func (h *Handler) AuthorFeed(w http.ResponseWriter, r *http.Request) {
	page, err := h.post.ListByAuthor(displayNameParam(r), parseLimit(r), parseCursor(r), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}

// HomeFeed serves posts from the authors the viewer follows.
func (h *Handler) HomeFeed(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	page, err := h.post.ListHome(user, parseLimit(r), parseCursor(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.follow.Follow(user, displayNameParam(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.follow.Unfollow(user, displayNameParam(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FollowStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.follow.Stats(viewerId(r), displayNameParam(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, stats)
}
