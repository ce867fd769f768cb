package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savegress/vaxtriage/internal/api"
	"github.com/savegress/vaxtriage/internal/config"
	"github.com/savegress/vaxtriage/internal/engine"
	"github.com/savegress/vaxtriage/internal/review"
	"github.com/savegress/vaxtriage/internal/source"
)

func main() {
	log.Println("Starting VaxTriage...")

	// Load configuration
	cfg := loadConfig()

	// Load the record collection; without it no display can occur
	records, err := source.Load(cfg.Source.Path)
	if err != nil {
		log.Fatalf("Failed to load record collection: %v", err)
	}
	earliest, latest := source.DateSpan(records)
	log.Printf("Loaded %d records (administered %s to %s)", len(records), earliest, latest)

	// Initialize the durable review store
	store, err := review.NewSQLiteStore(cfg.Review.DataPath)
	if err != nil {
		log.Fatalf("Failed to initialize review store: %v", err)
	}
	defer store.Close()

	tracker := review.NewTracker(store)

	// Initialize the assessment engine
	eng := engine.New(records, tracker, cfg.Engine.Debounce)

	// Create API server
	server := api.NewServer(cfg, eng)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("VaxTriage API listening on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down VaxTriage...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("VaxTriage stopped")
}

func loadConfig() *config.Config {
	configPath := os.Getenv("VAXTRIAGE_CONFIG")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Printf("Failed to load config from %s: %v, using defaults", configPath, err)
			return config.LoadFromEnv()
		}
		return cfg
	}
	return config.LoadFromEnv()
}
