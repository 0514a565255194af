package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dribeiro/datahub/internal/config"
	"github.com/dribeiro/datahub/internal/handler"
	"github.com/dribeiro/datahub/internal/httpx"
	"github.com/dribeiro/datahub/internal/registry"
	"github.com/dribeiro/datahub/internal/scheduler"
	"github.com/dribeiro/datahub/internal/service"
	"github.com/dribeiro/datahub/internal/store"
	"github.com/dribeiro/datahub/internal/store/memory"
	"github.com/dribeiro/datahub/internal/store/mongodb"
	"github.com/dribeiro/datahub/internal/worker"
	"github.com/dribeiro/datahub/pkg/middleware"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	config.InitLogger(cfg)

	slog.Info("Starting Data Integration Hub", "version", version, "storage", cfg.StorageBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select storage backend
	var (
		extractionRepo   store.ExtractionRepository
		scheduleRepo     store.ScheduleRepository
		notificationRepo store.NotificationRepository
		referenceRepo    store.ReferenceRepository
		pinger           handler.Pinger
	)

	switch cfg.StorageBackend {
	case "mongo":
		db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout)
		if err != nil {
			slog.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := db.Disconnect(context.Background()); err != nil {
				slog.Error("Failed to disconnect from MongoDB", "error", err)
			}
		}()

		mongoStore, err := mongodb.NewStore(ctx, db)
		if err != nil {
			slog.Error("Failed to initialize MongoDB store", "error", err)
			os.Exit(1)
		}
		extractionRepo = mongoStore.Extractions
		scheduleRepo = mongoStore.Schedules
		notificationRepo = mongoStore.Notifications
		referenceRepo = mongoStore.Reference
		pinger = db
	default:
		memStore := memory.NewStore()
		extractionRepo = memStore.Extractions
		scheduleRepo = memStore.Schedules
		notificationRepo = memStore.Notifications
		referenceRepo = memStore.Reference
	}

	// Transient step registry
	stepRegistry := registry.NewMemoryStepRegistry()

	// Simulator and worker pool
	simulator := service.NewSimulator(extractionRepo, stepRegistry, service.StageDelays{
		Fetch:   cfg.StageFetchDelay,
		Clean:   cfg.StageCleanDelay,
		Build:   cfg.StageBuildDelay,
		Deposit: cfg.StageDepositDelay,
		Settle:  cfg.StageSettleDelay,
	})

	pool := worker.NewPool(cfg.WorkerPoolSize, cfg.JobQueueSize)
	pool.SetRunner(func(ctx context.Context, job worker.Job) {
		simulator.Run(ctx, job.ExtractionID, job.SourceName)
	})
	pool.Start()

	// Outbound probe client with retry and circuit breaking
	probeClient := httpx.NewRetryingClient(httpx.NewPooledClient(cfg.ProbeTimeout), httpx.RetryConfig{
		MaxAttempts:    cfg.ProbeMaxAttempts,
		InitialDelayMs: cfg.ProbeInitialDelay,
		MaxDelayMs:     cfg.ProbeMaxDelay,
		Multiplier:     cfg.ProbeDelayMultiply,
	})
	probeClient.OnExhausted = func(err error) {
		slog.Warn("Network error signal emitted", "error", err.Error())
	}

	// Initialize services
	planner := scheduler.NewPlanner()
	extractionService := service.NewExtractionService(extractionRepo, referenceRepo, stepRegistry, pool)
	scheduleService := service.NewScheduleService(scheduleRepo, planner)
	notificationService := service.NewNotificationService(notificationRepo)
	probeService := service.NewProbeService(probeClient)

	// Initialize handlers
	extractionHandler := handler.NewExtractionHandler(extractionService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	referenceHandler := handler.NewReferenceHandler(referenceRepo)
	adminHandler := handler.NewAdminHandler(referenceRepo, probeService)
	healthHandler := handler.NewHealthHandler(pinger, cfg.StorageBackend, version)

	corsConfig := middleware.CORSConfig{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORSAllowedHeaders,
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           cfg.CORSMaxAge,
	}

	router := handler.NewRouter(
		extractionHandler,
		scheduleHandler,
		notificationHandler,
		referenceHandler,
		adminHandler,
		healthHandler,
		corsConfig,
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.Handler(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	slog.Info("Received shutdown signal, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop accepting requests first, then drain in-flight simulations.
	slog.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Stopping worker pool...")
	pool.Stop(shutdownCtx)

	slog.Info("Data Integration Hub stopped")
}
