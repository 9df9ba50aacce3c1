package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/garnizeh/fallwatch/api"
	dbfs "github.com/garnizeh/fallwatch/db"
	"github.com/garnizeh/fallwatch/internal/config"
	"github.com/garnizeh/fallwatch/internal/db"
	"github.com/garnizeh/fallwatch/internal/repository/sqlite"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting fallwatch server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open and migrate the database behind the readiness gate so the server
	// can start listening right away; requests wait on the gate until the
	// store is usable.
	gate := api.NewGate()
	dbReady := make(chan *db.DB, 1)
	go func() {
		d, err := db.New(ctx, cfg.DatabasePath)
		if err != nil {
			logger.Error("open db", slog.Any("err", err))
			gate.Fail(err)
			return
		}
		if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
			logger.Error("migrate db", slog.Any("err", err))
			d.Close()
			gate.Fail(err)
			return
		}
		dbReady <- d
		repo := sqlite.New(d, logger)
		gate.Ready(&api.Store{Users: repo, People: repo, Devices: repo})
	}()

	handler := api.SetupRoutes(version, buildTime, gate)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection if initialization got that far
	select {
	case d := <-dbReady:
		if err := d.Close(); err != nil {
			log.Printf("Error closing DB: %v", err)
		}
	default:
	}

	log.Println("Server exited")
}
