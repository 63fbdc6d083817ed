package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/publication-scheduler/backend/internal/handlers"
	"github.com/anonto42/publication-scheduler/backend/internal/router"
	"github.com/anonto42/publication-scheduler/backend/pkg/config"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/anonto42/publication-scheduler/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logger.Init(cfg.Log)
	if err != nil {
		logger.L().Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	config.SetupMiddleware(e, cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := router.SetupRoutes(ctx, e, db); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	go func() {
		log.Infof("Server listening on :%s (env=%s, storage=%s)", cfg.Port, cfg.Env, cfg.StorageDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
