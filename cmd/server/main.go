package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartdetector/moderation/internal/alert"
	"github.com/smartdetector/moderation/internal/classifier"
	"github.com/smartdetector/moderation/internal/moderation"
	"github.com/smartdetector/moderation/internal/notify"
	"github.com/smartdetector/moderation/internal/server"
	"github.com/smartdetector/moderation/internal/storage"
	"github.com/smartdetector/moderation/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize classifier
	var clf classifier.Classifier
	switch cfg.Classifier.Provider {
	case "openai":
		logger.Info("Using OpenAI moderation classifier")
		clf = classifier.NewOpenAIClassifier(cfg.OpenAI.APIKey, logger)
	case "keyword":
		logger.Info("Using keyword classifier")
		clf = classifier.NewKeywordClassifier()
	default:
		logger.Info("Using HTTP classifier", zap.String("base_url", cfg.Classifier.BaseURL))
		clf = classifier.NewHTTPClassifier(cfg.Classifier.BaseURL, cfg.Classifier.Timeout, logger)
	}

	// Initialize notification channels
	channels := []notify.Notifier{
		notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
		}, logger),
	}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		channels = append(channels, tg)
	}

	composer := alert.NewComposer(cfg.App.FrontendURL)
	orchestrator := moderation.New(clf, store, store, composer, notify.Multi(channels...), logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.New(store, orchestrator, logger).Routes(),
	}

	go func() {
		logger.Info("Server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
