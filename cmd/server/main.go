package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"wallet-client/internal/app"
	"wallet-client/internal/config"
	"wallet-client/internal/handler"
	"wallet-client/internal/logger"

	_ "wallet-client/docs"
)

// @title Wallet Demo API
// @version 1.0
// @description In-memory wallet ledger serving the REST surface of the wallet client
// @host localhost:3200
// @BasePath /api
func main() {
	// Setup logger
	log := logger.New(true, "info")

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log = logger.New(cfg.App.LogPretty, cfg.App.LogLevel)

	// Demo ledger seeded from config
	ledger, err := app.NewLedger(cfg.Demo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build demo ledger")
	}

	// Root context to be canceled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// http handler
	h := handler.NewHandler(ledger, log)
	router := h.SetupRoutes()

	// http server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Int("codes", len(cfg.Demo.Codes)).Msg("Demo wallet server started")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, starting graceful shutdown...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	} else {
		log.Info().Msg("HTTP server stopped gracefully")
	}

	log.Info().Msg("Shutdown complete")
}
