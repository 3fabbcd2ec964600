package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillstats/skillstats/internal/analytics"
	"github.com/skillstats/skillstats/internal/api"
	"github.com/skillstats/skillstats/internal/config"
	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/storage/sqlite"
)

func main() {
	// Parse flags
	cfg := parseFlags()

	// Validate configuration
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting skillstats server...")
	log.Printf("Config: port=%d, db=%s", cfg.Port, cfg.DBPath)

	// Resolve the dataset manifest; it carries the region-code partition
	manifest := dataset.Default()
	if cfg.ManifestPath != "" {
		m, err := dataset.Load(cfg.ManifestPath)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
		manifest = m
		log.Printf("Using manifest %s (%s)", cfg.ManifestPath, manifest.Name)
	}

	// Open record store
	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Create aggregator and HTTP server
	aggregator := analytics.NewAggregator(store, analytics.NewRegionSet(manifest.RegionCodes...))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	apiServer := api.NewServer(aggregator, store, addr)

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- apiServer.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)

	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}

		log.Println("Shutdown complete")
	}
}

func parseFlags() config.Config {
	cfg := config.DefaultConfig()

	configFile := flag.String("config", "", "Optional YAML config file")
	host := flag.String("host", cfg.Host, "HTTP server host")
	port := flag.Int("port", cfg.Port, "HTTP server port")
	db := flag.String("db", cfg.DBPath, "Path to the SQLite database")
	manifest := flag.String("manifest", cfg.ManifestPath, "Dataset manifest YAML (default: built-in ITU layout)")

	flag.Parse()

	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
	}

	// Explicit flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "db":
			cfg.DBPath = *db
		case "manifest":
			cfg.ManifestPath = *manifest
		}
	})

	return cfg
}
