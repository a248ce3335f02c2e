package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/offerdesk/api"
	dbfs "github.com/garnizeh/offerdesk/db"
	"github.com/garnizeh/offerdesk/internal/assistant"
	"github.com/garnizeh/offerdesk/internal/config"
	"github.com/garnizeh/offerdesk/internal/db"
	"github.com/garnizeh/offerdesk/internal/jobs"
	"github.com/garnizeh/offerdesk/internal/repository/sqlite"
	"github.com/garnizeh/offerdesk/pkg/ollama"
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
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	log.Printf("Starting OfferDesk server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Ollama client and the assistant engine
	client, err := ollama.NewDefaultClient(cfg.Ollama)
	if err != nil {
		log.Fatalf("Failed to create Ollama client: %v", err)
	}
	engine := assistant.NewEngine(client, cfg.Assistant)

	repo := sqlite.New(conn, logger)
	mgr := assistant.NewManager(repo, engine, logger)

	// Background jobs
	jobRepo := jobs.NewRepository(conn)
	handlers := jobs.NewHandlers(repo, repo, engine, logger)
	pool := jobs.NewWorkerPool(jobRepo, handlers, logger, cfg.Assistant.WorkerCount)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	pool.Start(workerCtx)

	// Every offer created through the assistant gets an AI summary job
	mgr.SetOfferCreatedHook(func(ctx context.Context, offerID int64) {
		payload := map[string]any{"offer_id": offerID}
		if _, err := pool.Enqueue(ctx, jobs.TypeOfferEnrich, payload, 100, 3); err != nil {
			logger.Warn("failed to enqueue offer.enrich job", "offer_id", offerID, "err", err)
		}
	})

	handler := api.SetupRoutes(cfg, version, buildTime, conn, mgr, pool)

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
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Stop workers before closing the database they read from
	stopWorkers()
	pool.Stop()

	if err := client.Close(); err != nil {
		log.Printf("Error closing Ollama client: %v", err)
	}

	// Close database connection
	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
