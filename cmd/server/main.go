package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inmolista/server/config"
	"inmolista/server/internal/api"
	"inmolista/server/internal/database"
	"inmolista/server/internal/favorites"
	"inmolista/server/internal/inquiry"
	"inmolista/server/internal/listing"
	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
	"inmolista/server/internal/processor"
	"inmolista/server/internal/queue"
	"inmolista/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Second handle for the ingest pipeline
	gormDB, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open ingest database handle")
	}

	// Notification sinks
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	var telegram *notify.Telegram
	if cfg.Telegram.IsEnabled {
		telegram = notify.NewTelegram(logger, &models.TelegramConfig{
			BotToken:  cfg.Telegram.BotToken,
			ChatID:    cfg.Telegram.ChatID,
			IsEnabled: true,
		})
		notifier = notify.Fanout{notify.NewLogNotifier(logger), telegram}
	}

	// Property catalog with its initial load
	catalog := listing.NewCatalog(func(ctx context.Context) ([]models.Property, error) {
		return db.GetAllProperties()
	}, notifier, logger)
	catalog.Reload(context.Background())

	// Inquiry workspace over the seed collection
	workspace := inquiry.NewWorkspace(
		inquiry.SampleInquiries(),
		notifier,
		logger,
		time.Duration(cfg.Workspace.TransitionDelayMs)*time.Millisecond,
	)
	defer workspace.Close()

	// Ingest pipeline
	ingestQueue := queue.NewIngestQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	ingestQueue.Start()
	defer ingestQueue.Close()

	batchProcessor := processor.NewBatchProcessor(gormDB, ingestQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	// Periodic catalog refresh
	refresh := scheduler.NewScheduler(catalog, logger, time.Duration(cfg.Catalog.RefreshMinutes)*time.Minute)
	refresh.Start()
	defer refresh.Stop()

	// Favorites store
	favStore := favorites.NewStore(cfg.Favorites.Path, logger)

	// HTTP layer
	handler := api.NewHandler(db, catalog, workspace, favStore, ingestQueue, telegram, logger)
	router := gin.Default()
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
