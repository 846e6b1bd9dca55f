package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pulsefeed-dev/pulsefeed/internal/config"
	"github.com/pulsefeed-dev/pulsefeed/internal/logger"
	"github.com/pulsefeed-dev/pulsefeed/internal/service"
	"github.com/pulsefeed-dev/pulsefeed/internal/sse"
)

type Handler struct {
	auth    service.AuthService
	post    service.PostService
	popular service.PopularService
	follow  service.FollowService
	user    service.UserService
	hub     *sse.Hub
	cfg     *config.Config
}

func New(auth service.AuthService, post service.PostService, popular service.PopularService, follow service.FollowService, user service.UserService, hub *sse.Hub, cfg *config.Config) *Handler {
	return &Handler{auth, post, popular, follow, user, hub, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, v, http.StatusOK)
}

func writeJSONStatus(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "err", err.Error())
	}
}
