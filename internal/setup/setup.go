package setup

import (
	"github.com/pulsefeed-dev/pulsefeed/internal/config"
	"github.com/pulsefeed-dev/pulsefeed/internal/handler"
	"github.com/pulsefeed-dev/pulsefeed/internal/jwt"
	"github.com/pulsefeed-dev/pulsefeed/internal/middleware"
	"github.com/pulsefeed-dev/pulsefeed/internal/service"
	"github.com/pulsefeed-dev/pulsefeed/internal/sse"
	"github.com/pulsefeed-dev/pulsefeed/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Hub            *sse.Hub
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	hub := sse.NewHub()

	auth := service.NewAuth(storage, jwtService)
	post := service.NewPost(storage, storage, storage)
	popular := service.NewPopular(storage)
	follow := service.NewFollow(storage, storage)
	user := service.NewUser(storage)

	h := handler.New(auth, post, popular, follow, user, hub, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Hub:            hub,
	}, nil
}
