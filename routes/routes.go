package routes

import (
	"log/slog"

	"github.com/delmonaco/poker-tracker/handlers"
	"github.com/delmonaco/poker-tracker/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes mounts every endpoint. Read endpoints are public; mutations
// require a valid token, with finer owner-or-admin checks inside the
// handlers.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	redisClient *redis.Client,
	logger *slog.Logger,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(redisClient, logger)).Post("/login", authHandler.Login)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{id}", playerHandler.Get)
		r.Get("/{id}/stats", playerHandler.Stats)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.With(middleware.RequireAdmin).Post("/", playerHandler.Create)
			r.Put("/{id}", playerHandler.Update)
			r.With(middleware.RequireAdmin).Delete("/{id}", playerHandler.Delete)
			r.Post("/{id}/avatar", playerHandler.UploadAvatar)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
		})
	})

	router.Route("/stats", func(r chi.Router) {
		r.Get("/leaderboard", statsHandler.Leaderboard)
		r.Get("/top", statsHandler.TopPerformers)
	})

	router.Get("/ws/leaderboard", webSocketHandler.ServeLeaderboard)
}
