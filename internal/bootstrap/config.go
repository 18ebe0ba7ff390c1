// Package bootstrap wires the service: configuration, logging, storage
// and the assembled HTTP and processor components.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/edupulse/riskcore/internal/config"
	infraconfig "github.com/edupulse/riskcore/internal/infra/config"
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
)

const defaultServicePort = 8080

// LoadConfig loads configuration. Uses defaults if file doesn't exist.
func LoadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config file (%s), using defaults: %v", configPath, err)
		return config.Default(), nil
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	logger, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger.With(infralogger.String("service", "riskcore")), nil
}
