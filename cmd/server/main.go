package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendance-service/internal/infrastructure/config"
	"attendance-service/internal/infrastructure/persistence"
	"attendance-service/internal/interface/notifier"
	gormRepo "attendance-service/internal/interface/repository"
	mongoRepo "attendance-service/internal/interface/repository"
	"attendance-service/internal/usecase"
	"attendance-service/pkg/logger"
	"attendance-service/pkg/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting Attendance Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := gormRepo.AutoMigrate(gormDB); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	// Set up MongoDB connection for the audit trail
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	scheduleRepository := gormRepo.NewGormScheduleRepository(gormDB)
	userRepository := gormRepo.NewGormUserRepository(gormDB)
	scheduleLogRepository := mongoRepo.NewMongoScheduleLogRepository(mongoDB)
	webhookNotifier := notifier.NewWebhookNotifier(cfg.WebhookURL, log)

	// Set up metrics and use cases
	m := metrics.NewMetrics("attendance")
	userUseCase := usecase.NewUserUseCase(userRepository, log)
	scheduleUseCase := usecase.NewScheduleUseCase(scheduleRepository, scheduleLogRepository, webhookNotifier, userUseCase, m, log)

	// Schedule the periodic cleanup of old schedules
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal("Failed to create scheduler", "error", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.CleanupInterval),
		gocron.NewTask(func() {
			log.Info("Running scheduled cleanup task")
			cleaned, err := scheduleUseCase.CleanupOldSchedules(ctx, cfg.CleanupThresholdDays)
			if err != nil {
				log.Error("Error during scheduled cleanup", "error", err)
				return
			}
			if cleaned > 0 {
				log.Info("Cleanup task completed", "removed", cleaned)
			} else {
				log.Debug("Cleanup task completed, nothing to remove")
			}
		}),
		gocron.WithName("schedule-cleanup"),
	)
	if err != nil {
		log.Fatal("Failed to schedule cleanup job", "error", err)
	}
	scheduler.Start()
	log.Info("Scheduled cleanup task", "interval", cfg.CleanupInterval, "thresholdDays", cfg.CleanupThresholdDays)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := scheduler.Shutdown(); err != nil {
		log.Error("Scheduler shutdown error", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Attendance Service stopped")
}
