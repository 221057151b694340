package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/app"
	"github.com/kailas-cloud/nearby/internal/config"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	"github.com/kailas-cloud/nearby/internal/metrics"
	chiTransport "github.com/kailas-cloud/nearby/internal/transport/chi"
	healthuc "github.com/kailas-cloud/nearby/internal/usecase/health"
	"github.com/kailas-cloud/nearby/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting nearby server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("venues_base_url", cfg.Venues.BaseURL),
		zap.String("default_query", cfg.Widget.DefaultQuery),
	)

	// Register provider metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	a, err := app.Build(&cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build app", zap.Error(err))
	}
	defer a.Search.Stop()

	report := a.Health.Check(context.Background())
	for _, name := range a.Health.Names() {
		if report.Checks[name] != healthuc.CheckOK {
			logger.Warn("Provider unavailable", zap.String("provider", name), zap.String("check", string(report.Checks[name])))
		}
	}

	server := chiTransport.NewServer(a.Search, a.View, a.Health, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogger(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// The widget opens on the default query.
	if _, err := a.Search.Submit(context.Background(), cfg.Widget.DefaultQuery); err != nil {
		logger.Warn("Default query rejected", zap.Error(err))
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
