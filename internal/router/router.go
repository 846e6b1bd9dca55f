package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsefeed-dev/pulsefeed/internal/middleware/metrics"
	"github.com/pulsefeed-dev/pulsefeed/internal/setup"
)

// New creates and configures the router with all the routes.
// Read endpoints run behind OptionalAuth so anonymous requests work but
// authenticated ones get viewer annotations; mutations require auth.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.Register)
		api.Post("/auth/login", h.Login)
		api.Post("/auth/logout", h.Logout)

		// Public reads, viewer-aware when a token is presented
		api.Group(func(public chi.Router) {
			public.Use(authMw.OptionalAuth)
			public.Get("/posts", h.Feed)
			public.Get("/posts/{postId}", h.GetPost)
			public.Get("/posts/{postId}/comments", h.ListComments)
			public.Get("/users/search", h.SearchUsers)
			public.Get("/users/{displayName}", h.UserProfile)
			public.Get("/users/{displayName}/posts", h.AuthorFeed)
			public.Get("/users/{displayName}/follow-stats", h.FollowStats)
			public.Get("/popular", h.PopularFeed)
			public.Get("/stream/posts", h.StreamPosts)
		})

		// Logged-in user routes
		api.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth)
			loggedIn.Post("/posts", h.CreatePost)
			loggedIn.Delete("/posts/{postId}", h.DeletePost)
			loggedIn.Post("/posts/{postId}/likes", h.LikePost)
			loggedIn.Delete("/posts/{postId}/likes", h.UnlikePost)
			loggedIn.Post("/posts/{postId}/comments", h.AddComment)
			loggedIn.Post("/users/{displayName}/follow", h.Follow)
			loggedIn.Delete("/users/{displayName}/follow", h.Unfollow)
			loggedIn.Put("/users/me", h.UpdateMe)
			loggedIn.Get("/home", h.HomeFeed)
			loggedIn.Get("/auth/me", h.Me)
		})
	})

	// avoid 404s for stray preflight requests
	r.MethodFunc(http.MethodOptions, "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
