package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

func parsePostId(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "postId"))
}

// Feed serves the global chronological feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	page, err := h.post.List(parseLimit(r), parseCursor(r), viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	type bodyJson struct {
		Content  string `validate:"required" json:"content"`
		ImageUrl string `json:"imageUrl"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(user, body.Content, body.ImageUrl)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.hub.BroadcastPost(post)
	writeJSONStatus(w, post, http.StatusCreated)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	post, err := h.post.Snapshot(postId, viewerId(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.post.Delete(postId, user); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.hub.BroadcastPostDeleted(postId)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.mutateLike(w, r, true)
}

func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	h.mutateLike(w, r, false)
}

// mutateLike handles like and unlike symmetrically: mutate, re-read the
// snapshot, announce it, return it.
func (h *Handler) mutateLike(w http.ResponseWriter, r *http.Request, like bool) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	mutate := h.post.Unlike
	if like {
		mutate = h.post.Like
	}
	post, err := mutate(postId, user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.hub.BroadcastPost(post)
	writeJSON(w, post)
}
