package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/echokeys/echokeys/internal/api"
	"github.com/echokeys/echokeys/internal/challenge"
	"github.com/echokeys/echokeys/internal/config"
	"github.com/echokeys/echokeys/internal/db"
	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/platform"
	"github.com/echokeys/echokeys/internal/repository/sqlite"
	"github.com/echokeys/echokeys/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("EchoKeys Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("challenges_dir=%s", cfg.ChallengesDir)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)
	log.Debug("platform_url=%s", cfg.PlatformURL)
	log.Debug("community_name=%s", cfg.CommunityName)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load challenges in the background. Requests arriving before the pool
	// is ready get a loading placeholder instead of blocking.
	provider := challenge.New()
	go provider.Load(cfg.ChallengesDir)

	// Initialize repositories and services
	statsRepo := sqlite.NewStatsRepository(database.DB)
	leaderboardRepo := sqlite.NewLeaderboardRepository(database.DB)
	challengeService := services.NewChallengeService(provider)
	scoreService := services.NewScoreService(statsRepo, leaderboardRepo)

	srv := &api.Server{
		ChallengeService: challengeService,
		ScoreService:     scoreService,
		Posts:            platform.New(cfg.PlatformURL, cfg.CommunityName),
		LeaderboardLimit: cfg.LeaderboardLimit,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("EchoKeys Server Stopped")
	log.Info("===========================================")
}
