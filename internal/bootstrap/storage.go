package bootstrap

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/edupulse/riskcore/internal/chat"
	"github.com/edupulse/riskcore/internal/config"
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
	"github.com/edupulse/riskcore/internal/notify"
	"github.com/edupulse/riskcore/internal/storage"
)

// SetupDocumentStore connects the optional MongoDB mirror. Returns nil
// when the mirror is disabled or unreachable; the pipeline runs without
// it either way.
func SetupDocumentStore(ctx context.Context, cfg *config.Config, logger infralogger.Logger) *storage.DocumentStore {
	if !cfg.Mongo.Enabled {
		logger.Info("Document mirror disabled")
		return nil
	}

	store, err := storage.NewDocumentStore(ctx, storage.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logger.Warn("Document mirror unavailable, continuing without it",
			infralogger.Error(err),
		)
		return nil
	}

	logger.Info("Document mirror connected", infralogger.String("database", cfg.Mongo.Database))
	return store
}

// SetupSessionStore connects the optional Redis session mirror.
func SetupSessionStore(cfg *config.Config, logger infralogger.Logger) chat.SessionStore {
	if !cfg.Redis.Enabled {
		logger.Info("Session cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	logger.Info("Session cache configured", infralogger.String("addr", cfg.Redis.URL))
	return chat.NewRedisStore(client, cfg.Redis.SessionTTL)
}

// SetupAuditLog opens the local alert audit database.
func SetupAuditLog(cfg *config.Config, logger infralogger.Logger) *notify.SQLiteAuditLog {
	audit, err := notify.NewSQLiteAuditLog(cfg.Alerts.AuditLogPath)
	if err != nil {
		logger.Warn("Alert audit log unavailable, continuing without it",
			infralogger.String("path", cfg.Alerts.AuditLogPath),
			infralogger.Error(err),
		)
		return nil
	}

	logger.Info("Alert audit log ready", infralogger.String("path", cfg.Alerts.AuditLogPath))
	return audit
}
