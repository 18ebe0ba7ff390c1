package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/config"
	"github.com/edupulse/riskcore/internal/database"
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
)

// DatabaseComponents holds database connection and repositories.
type DatabaseComponents struct {
	DB           *sqlx.DB
	Students     *database.StudentRepository
	Assessments  *database.AssessmentRepository
	Alerts       *database.AlertRepository
	ChatMessages *database.ChatRepository
}

// SetupDatabase creates database connection and repositories.
func SetupDatabase(ctx context.Context, cfg *config.Config, logger infralogger.Logger) (*DatabaseComponents, error) {
	dbConfig := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConnections,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	logger.Info("Connecting to PostgreSQL database",
		infralogger.String("host", dbConfig.Host),
		infralogger.Int("port", dbConfig.Port),
		infralogger.String("database", dbConfig.Database),
	)

	db, err := database.Connect(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Database connected successfully")

	return &DatabaseComponents{
		DB:           db,
		Students:     database.NewStudentRepository(db),
		Assessments:  database.NewAssessmentRepository(db),
		Alerts:       database.NewAlertRepository(db),
		ChatMessages: database.NewChatRepository(db),
	}, nil
}
