package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/padelops/tournament-engine/config"
	"github.com/padelops/tournament-engine/db"
	"github.com/padelops/tournament-engine/handlers"
	"github.com/padelops/tournament-engine/middleware"
	"github.com/padelops/tournament-engine/repositories"
	"github.com/padelops/tournament-engine/routes"
	"github.com/padelops/tournament-engine/services"
	"github.com/padelops/tournament-engine/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	var uploader storage.Uploader
	if cfg.R2Configured() {
		uploader, err = storage.NewR2Uploader(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	userRepo := repositories.NewPostgresUserRepository(conn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(conn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(conn)
	matchRepo := repositories.NewPostgresMatchRepository(conn)
	clubRepo := repositories.NewPostgresClubRepository(conn)

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	standingsService := services.NewStandingsService(tournamentRepo, registrationRepo, matchRepo)
	fixtureService := services.NewFixtureService(conn, tournamentRepo, registrationRepo, matchRepo, logger)
	bracketService := services.NewBracketService(conn, tournamentRepo, registrationRepo, matchRepo, standingsService, logger)
	scoreService := services.NewScoreService(conn, matchRepo, logger)
	scheduleService := services.NewScheduleService(conn, tournamentRepo, clubRepo, matchRepo, logger)
	clubService := services.NewClubService(clubRepo, uploader, logger)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Fixtures:  handlers.NewFixtureHandler(fixtureService),
		Brackets:  handlers.NewBracketHandler(bracketService),
		Standings: handlers.NewStandingsHandler(standingsService),
		Matches:   handlers.NewMatchHandler(matchRepo, scoreService),
		Schedules: handlers.NewScheduleHandler(scheduleService),
		Clubs:     handlers.NewClubHandler(clubService),
	}, middleware.NewAuthenticator(cfg.JWTSecretKey))

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
