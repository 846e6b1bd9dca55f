package handler

import (
	"net/http"

	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	type bodyJson struct {
		Content string `validate:"required" json:"content"`
	}
	var body bodyJson
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.post.AddComment(postId, body.Content, user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// listeners get the updated comment count with the post snapshot
	if post, err := h.post.Snapshot(postId, nil); err == nil {
		h.hub.BroadcastPost(post)
	}
	writeJSONStatus(w, comment, http.StatusCreated)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postId, err := parsePostId(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	page, err := h.post.ListComments(postId, parseLimit(r), parseCursor(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, page)
}
