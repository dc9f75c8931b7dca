package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgchart-backend/infrastructure/config"
	"orgchart-backend/infrastructure/di"
	"orgchart-backend/interfaces/http/rest"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Load the hierarchy before serving. A failed load is not fatal: the
	// notice feed carries the failure and POST /hierarchy/reload retries.
	// The load runs outside any request, so it opens its own trace segment.
	loadCtx, closeSegment := container.Tracer.StartSegment(ctx, "HierarchyLoad")
	loadErr := container.HierarchyLoader.Load(loadCtx)
	closeSegment(loadErr)
	if loadErr != nil {
		container.Logger.Warn("Initial hierarchy load failed", zap.Error(loadErr))
	}

	// Create router
	router := rest.NewRouter(
		cfg,
		container.CommandBus,
		container.QueryBus,
		container.Notifier,
		container.Logger,
	)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown: stop accepting requests, then wait for in-flight
	// reassignment persistence to finish so nothing is lost.
	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	container.Shutdown(shutdownCtx)

	log.Println("Server stopped")
}
