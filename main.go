package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"product-catalog/app"
	"product-catalog/config"
	"product-catalog/logging"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	envLoaded := false
	if os.Getenv("ENV") != "production" {
		envLoaded = godotenv.Load(".env") == nil
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger := logging.Init(cfg.Logging.Level, cfg.Logging.Format)
	if envLoaded {
		logger.Debug().Msg("Loaded environment variables from .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	// Initialize application
	application, err := app.Initialize(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	go application.RunSessionSweeper(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Server shutdown failed")
		}
	}()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	logger.Info().Str("addr", cfg.Addr).Int("products", application.Catalog.ProductCount()).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
	logger.Info().Msg("Server stopped")
}
