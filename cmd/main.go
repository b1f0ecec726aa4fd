/*
Package main is the entry point for the journal web client.

It loads configuration, initializes the global logging system, opens the snapshot storage,
restores the saved session behind the persistence gate, serves the views over HTTP, and
shuts everything down in order when the process receives SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journal/internal/app/api"
	"journal/internal/app/link"
	"journal/internal/app/live"
	"journal/internal/app/persist"
	"journal/internal/app/route"
	"journal/internal/app/session"
	"journal/internal/app/storage"
	"journal/internal/app/view"
	"journal/internal/configs"
	"journal/internal/handler"
	"journal/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment(), cfg.LogLevel)
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("api_url", cfg.APIURL).
		Str("storage_driver", cfg.StorageDriver).
		Str("snapshot_key", cfg.SnapshotKey()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := storage.NewSnapshotStorage(ctx, storage.ServiceConfig{
		Driver:            cfg.StorageDriver,
		Path:              cfg.StoragePath,
		RedisURL:          cfg.RedisURL,
		DatabaseDSN:       cfg.DatabaseDSN,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to open snapshot storage")
	}

	// Session store, write-through and boot-time rehydration
	store := session.NewStore()

	persister := persist.NewPersister(store, snapshots, cfg.SnapshotKey())
	persisterCtx, stopPersister := context.WithCancel(context.Background())
	persisterDone := make(chan struct{})
	go func() {
		defer close(persisterDone)
		persister.Run(persisterCtx)
	}()

	gate := persist.NewGate(store, snapshots, cfg.SnapshotKey(), cfg.RehydrateTimeout)
	gate.Start(ctx)

	// Live session feed
	hub := live.NewHub(store)
	go hub.Run()

	renderer, err := view.NewRenderer()
	if err != nil {
		logx.Fatal(err, "Failed to parse templates")
	}

	httpClient := &http.Client{
		Transport: link.New(store, nil, link.WithVerboseLogging(cfg.IsDevelopment())),
	}

	authLimiter := handler.NewAuthLimiter()

	deps := &handler.AppDeps{
		Config:      cfg,
		Store:       store,
		Gate:        gate,
		Table:       route.DefaultTable(),
		API:         api.NewClient(cfg.APIURL, httpClient, cfg.APITimeout),
		Renderer:    renderer,
		Hub:         hub,
		AuthLimiter: authLimiter,
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := cfg.ListenAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.APITimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Melog client starting on http://%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	hub.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	authLimiter.Close()

	// the persister flushes a pending write before returning
	stopPersister()
	<-persisterDone

	if err := snapshots.Close(); err != nil {
		logx.Error(err, "Failed to close snapshot storage")
	}

	logx.Info("Client gracefully stopped.")
}
