package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/config"
	"github.com/pathlight/internal/handler"
	"github.com/pathlight/internal/middleware"
	"github.com/pathlight/internal/repository"
	"github.com/pathlight/internal/service"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Server.Mode == config.ModeDebug {
		logLevel = slog.LevelDebug
	}
	logCloser, err := middleware.InitLogger(cfg.Log.Dir, logLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	middleware.LogInfo("starting pathlight",
		"version", Version,
		"commit", Commit,
		"build_time", BuildTime,
		"mode", cfg.Server.Mode,
		"driver", cfg.Database.Driver,
	)
	if cfg.GeneratedSecret {
		middleware.LogWarn("jwt secret not configured, generated an ephemeral one; tokens will not survive a restart")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := repository.Open(cfg.Database, cfg.Server.Mode)
	if err != nil {
		middleware.LogError("failed to open database", "error", err)
		os.Exit(1)
	}

	// Auto migrate database
	if err := repository.AutoMigrate(db); err != nil {
		middleware.LogError("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(cfg.JWT)
	services := handler.Services{
		Auth:   service.NewAuthService(userRepo, tokenService),
		Debts:  service.NewDebtService(debtRepo),
		Goals:  service.NewGoalService(goalRepo),
		Health: service.NewHealthService(db),
	}

	router := handler.NewRouter(cfg.Server, services)

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		middleware.LogInfo("server listening", "addr", srv.Addr, "api_prefix", cfg.Server.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			middleware.LogError("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	middleware.LogInfo("shutting down server")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		middleware.LogError("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			middleware.LogError("error closing database", "error", err)
		}
	}

	middleware.LogInfo("server exited")
}
