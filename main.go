package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resupplycharts/internal/config"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/logger"
	"resupplycharts/internal/server"
	"resupplycharts/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal("Invalid logging configuration", err)
	}

	log := logger.Component("main")
	log.Info("Starting Resupply Charts Service", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"deployment":  cfg.DeploymentMode,
		"mockup":      cfg.MockupMode,
		"version":     config.GetVersion(),
	})

	client, err := storage.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create storage client", err)
	}

	source := fetchers.NewCachedSource(server.NewSource(cfg), server.SnapshotCacheTTL)
	srv, err := server.NewServer(cfg, source, client)
	if err != nil {
		log.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Report generation renders every chart
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}
