package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"team-project-backend/internal/adapter/api/rest"
	"team-project-backend/internal/config"
	"team-project-backend/internal/core/service"
	"team-project-backend/internal/observability"
)

// -- MAIN --

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	ctx := context.Background()

	// Init Tracing
	tpShutdown, err := observability.InitTracerProvider(ctx, "team-project-backend", cfg.OtelExporterEndpoint)
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tpShutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// Service Init
	submissionSvc := observability.NewInstrumentedSubmissionService(service.NewSubmissionService(logger))

	// Init Handlers
	handler := rest.NewHandler(submissionSvc, logger, cfg.MaxBodyBytes)

	// Init Router
	router := rest.NewRouter(handler, rest.RequestID, rest.Logger(logger), observability.Middleware)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: rest.NewServerMux(router),
	}

	// Graceful Shutdown
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
