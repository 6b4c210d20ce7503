package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delmonaco/poker-tracker/config"
	"github.com/delmonaco/poker-tracker/db"
	"github.com/delmonaco/poker-tracker/handlers"
	"github.com/delmonaco/poker-tracker/live"
	"github.com/delmonaco/poker-tracker/repositories"
	api "github.com/delmonaco/poker-tracker/routes"
	"github.com/delmonaco/poker-tracker/services"
	"github.com/delmonaco/poker-tracker/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Avatar storage is optional; without R2 credentials upload endpoints
	// report the feature as unconfigured.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("avatar storage not configured, uploads disabled")
	}

	// Redis backs the login rate limiter; without it the limiter is a
	// pass-through.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		logger.Info("redis client initialized")
	} else {
		logger.Info("redis not configured, login rate limiting disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("leaderboard hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	roleRepo := repositories.NewPostgresRoleRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	participationRepo := repositories.NewPostgresTournamentPlayerRepository(dbConn)
	statsRepo := repositories.NewPostgresStatsRepository(dbConn)
	logger.Info("repositories initialized")

	roleService := services.NewRoleService(roleRepo, logger)
	authService := services.NewAuthService(playerRepo)
	playerService := services.NewPlayerService(dbConn, playerRepo, participationRepo, roleService, uploader, logger)
	statsService := services.NewStatsService(statsRepo, playerRepo, participationRepo, logger)
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, participationRepo, statsService, wsHub, logger)
	logger.Info("services initialized")

	{
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := roleService.EnsureDefaultRoles(seedCtx)
		cancel()
		if err != nil {
			logger.Error("failed to seed default roles", slog.Any("error", err))
			os.Exit(1)
		}
	}

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	playerHandler := handlers.NewPlayerHandler(playerService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	statsHandler := handlers.NewStatsHandler(statsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		redisClient,
		logger,
		authHandler,
		playerHandler,
		tournamentHandler,
		statsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
