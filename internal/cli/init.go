// Package cli provides common initialization for cmd/finman: logging,
// environment loading, configuration, and backend selection.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"finman/internal/config"
	"finman/internal/export"
	exportgoogle "finman/internal/export/google"
	exportmem "finman/internal/export/memory"
	"finman/internal/log"
	"finman/internal/notify"
	"finman/internal/storage"
	"finman/internal/storage/memory"
	"finman/internal/storage/sqlite"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the process default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Handler = nil
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitStores selects and initializes the data backend. The returned cleanup
// closes the backend and is a no-op for the memory stores.
func InitStores(logger *log.Logger, cfg *config.Config) (storage.Stores, func()) {
	switch cfg.DataBackend {
	case "sqlite":
		backend, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return backend.Stores(), func() {
			if err := backend.Close(); err != nil {
				logger.Error("Failed to close SQLite backend", log.FieldError, err)
			}
		}
	default:
		logger.Info("Initialized memory backend")
		return memory.NewStores(), func() {}
	}
}

// InitNotifier selects the notification backend. The log notifier is the
// default and never fails.
func InitNotifier(logger *log.Logger, cfg *config.Config) (notify.Notifier, func()) {
	switch cfg.NotifyBackend {
	case "amqp":
		n, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP notifier", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Initialized AMQP notifier", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return n, func() {
			if err := n.Close(); err != nil {
				logger.Error("Failed to close AMQP notifier", log.FieldError, err)
			}
		}
	default:
		logger.Info("Initialized log notifier")
		return notify.NewLogNotifier(), func() {}
	}
}

// InitExporter selects the report export backend.
func InitExporter(ctx context.Context, logger *log.Logger, cfg *config.Config) export.ReportWriter {
	switch cfg.ExportBackend {
	case "sheets":
		client, err := exportgoogle.New(ctx, exportgoogle.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Initialized Google Sheets exporter", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return client
	default:
		logger.Info("Initialized memory exporter")
		return exportmem.New()
	}
}
