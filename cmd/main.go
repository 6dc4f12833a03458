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

	"github.com/Dosada05/cue-league/brackets"
	"github.com/Dosada05/cue-league/config"
	"github.com/Dosada05/cue-league/db"
	"github.com/Dosada05/cue-league/handlers"
	"github.com/Dosada05/cue-league/repositories"
	api "github.com/Dosada05/cue-league/routes"
	"github.com/Dosada05/cue-league/services"
	"github.com/Dosada05/cue-league/storage"
	"github.com/go-chi/chi/v5"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("archive_enabled", cfg.ArchiveEnabled()))

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

	// archiving stays disabled unless every R2 variable is set
	var archiver services.DrawArchiver
	if cfg.ArchiveEnabled() {
		uploader, err := storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
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
		archiver = storage.NewDrawArchiver(uploader)
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	roundRobinRepo := repositories.NewPostgresRoundRobinRepository(dbConn)
	knockoutRepo := repositories.NewPostgresKnockoutRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRecordRepository(dbConn)

	playerService := services.NewPlayerService(playerRepo, matchRepo, logger)
	roundRobinService := services.NewRoundRobinService(
		roundRobinRepo,
		playerRepo,
		wsHub,
		archiver,
		services.ScheduleLimits{
			MaxMatchesPerDate:          cfg.MaxMatchesPerDate,
			MaxMatchesPerPlayerPerDate: cfg.MaxMatchesPerPlayerPerDate,
		},
		nil,
		logger,
	)
	knockoutService := services.NewKnockoutService(
		knockoutRepo,
		playerRepo,
		matchRepo,
		wsHub,
		archiver,
		nil,
		logger,
	)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Players:    handlers.NewPlayerHandler(playerService),
		RoundRobin: handlers.NewRoundRobinHandler(roundRobinService),
		Knockout:   handlers.NewKnockoutHandler(knockoutService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
		Health:     handlers.NewHealthHandler(dbConn),
	}, api.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: requestTimeout,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
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
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
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
