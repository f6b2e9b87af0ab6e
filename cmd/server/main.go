package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examace/examace/internal/api"
	"github.com/examace/examace/internal/auth"
	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/config"
	"github.com/examace/examace/internal/db"
	"github.com/examace/examace/internal/jobs"
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/repository/sqlite"
	"github.com/examace/examace/internal/services"
	"github.com/examace/examace/internal/session"
	"github.com/examace/examace/internal/worker"
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
	log.Info("ExamAce Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("catalog_seed=%d", cfg.CatalogSeed)
	log.Debug("mock_test_count=%d", cfg.MockTestCount)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

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

	// Build the exam catalog from the embedded question bank
	questions, err := catalog.SeedQuestions()
	if err != nil {
		log.Error("failed to load seed questions: %v", err)
		os.Exit(1)
	}
	cat := catalog.Build(questions, catalog.Options{
		Seed:          cfg.CatalogSeed,
		MockTestCount: cfg.MockTestCount,
	})

	// Repositories
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	userRepo := sqlite.NewUserRepository(database.DB)

	// Background stats refresh
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	jobQueue := jobs.NewWorkerQueue(statsPool, attemptRepo, statsRepo, userRepo)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authService := services.NewAuthService(userRepo, auth.NewOTPStore(), tokens)
	examService := services.NewExamService(cat)
	attemptService := services.NewAttemptService(attemptRepo, jobQueue)
	sessionService := services.NewSessionService(cat, session.NewRegistry(), attemptService)
	statsService := services.NewStatsService(attemptRepo, statsRepo)

	srv := &api.Server{
		DB:             database,
		Catalog:        cat,
		Tokens:         tokens,
		AuthService:    authService,
		ExamService:    examService,
		SessionService: sessionService,
		AttemptService: attemptService,
		StatsService:   statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping stats pool")
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("ExamAce Server Stopped")
	log.Info("===========================================")
}
