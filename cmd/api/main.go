package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/ravenlog/internal/config"
	"github.com/jwebster45206/ravenlog/internal/handlers"
	"github.com/jwebster45206/ravenlog/internal/logger"
	"github.com/jwebster45206/ravenlog/internal/middleware"
	"github.com/jwebster45206/ravenlog/internal/services/events"
	"github.com/jwebster45206/ravenlog/internal/services/queue"
	"github.com/jwebster45206/ravenlog/internal/storage"
	"github.com/jwebster45206/ravenlog/internal/worker"
	"github.com/jwebster45206/ravenlog/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting ravenlog API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"catalog", cfg.Catalog,
		"data_dir", cfg.DataDir)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		log.Error("Invalid storage configuration", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	names, err := store.ListCatalogs(storageCtx)
	if err != nil {
		log.Error("Failed to list catalogs", "data_dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	log.Info("Catalogs available", "catalogs", names)

	// Fail fast on a broken catalog rather than on the first request.
	if _, err := store.LoadCatalog(storageCtx, cfg.Catalog); err != nil {
		log.Error("Failed to load catalog", "catalog", cfg.Catalog, "error", err)
		os.Exit(1)
	}

	broadcaster := events.NewBroadcaster(store.Client(), log)
	sessions := session.NewManager(store, cfg.Catalog,
		session.WithLogger(log),
		session.WithPublisher(broadcaster))

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	gamesHandler := handlers.NewGamesHandler(sessions, log)

	// Queued records share the API's sessions, so the workers run here.
	var pool *worker.Pool
	if cfg.IngestWorkers > 0 {
		ingestQueue := queue.NewIngestQueue(queue.NewClientWithRedis(store.Client(), log))
		processor := worker.NewProcessor(sessions, log)
		pool = worker.NewPool(cfg.IngestWorkers, ingestQueue, processor, store.Client(), broadcaster, log)
		pool.Start()
		gamesHandler.WithFeed(ingestQueue)
		log.Info("Ingest workers started", "count", cfg.IngestWorkers)
	}

	mux.Handle("/v1/games", gamesHandler)
	mux.Handle("/v1/games/", gamesHandler)

	mux.Handle("/v1/events/games/", handlers.NewEventsHandler(store.Client(), log))

	handler := middleware.LoggerWith(log, mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: the SSE endpoint streams for as long as the client stays.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if pool != nil {
		pool.Stop()
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
