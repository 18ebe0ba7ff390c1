// Package config holds the riskcore service configuration.
package config

import (
	"time"

	infraconfig "github.com/edupulse/riskcore/internal/infra/config"
)

// Default configuration values.
const (
	defaultServiceName       = "riskcore"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8080
	defaultConcurrency       = 10
	defaultBatchSize         = 100
	defaultSweepIntervalSec  = 300
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "riskcore"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 25
	defaultDBMaxIdleConns    = 5
	defaultMongoURI          = "mongodb://localhost:27017"
	defaultMongoDatabase     = "riskcore"
	defaultRedisURL          = "localhost:6379"
	defaultSessionTTLHours   = 24
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultBackendTimeoutSec = 8
	defaultBackendRPS        = 5
	defaultBackendBurst      = 10
	defaultAuditLogPath      = "data/notification_log.db"
)

// Config holds all configuration for the riskcore service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	Backend  BackendConfig  `yaml:"backend"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name          string        `yaml:"name"`
	Version       string        `yaml:"version"`
	Port          int           `env:"RISKCORE_PORT"        yaml:"port"`
	Debug         bool          `env:"APP_DEBUG"            yaml:"debug"`
	Concurrency   int           `env:"RISKCORE_CONCURRENCY" yaml:"concurrency"`
	BatchSize     int           `yaml:"batch_size"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// MongoConfig holds the document mirror configuration.
type MongoConfig struct {
	Enabled  bool   `env:"MONGO_ENABLED" yaml:"enabled"`
	URI      string `env:"MONGO_URI"     yaml:"uri"`
	Database string `yaml:"database"`
}

// RedisConfig holds the session cache configuration.
type RedisConfig struct {
	Enabled    bool          `env:"REDIS_ENABLED"  yaml:"enabled"`
	URL        string        `env:"REDIS_URL"      yaml:"url"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// BackendConfig holds the text-generation backend configuration. An
// empty URL disables the backend entirely; chat then runs on the
// deterministic fallback templates.
type BackendConfig struct {
	URL            string        `env:"BACKEND_URL" yaml:"url"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec int           `yaml:"requests_per_sec"`
	Burst          int           `yaml:"burst"`
}

// AlertsConfig holds alerting configuration.
type AlertsConfig struct {
	AuditLogPath string `env:"ALERT_AUDIT_LOG" yaml:"audit_log_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

// Default returns a configuration with every default applied, for use
// when no config file is available.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setMongoDefaults(&cfg.Mongo)
	setRedisDefaults(&cfg.Redis)
	setBackendDefaults(&cfg.Backend)
	setAlertsDefaults(&cfg.Alerts)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = defaultSweepIntervalSec * time.Second
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setMongoDefaults(m *MongoConfig) {
	if m.URI == "" {
		m.URI = defaultMongoURI
	}
	if m.Database == "" {
		m.Database = defaultMongoDatabase
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.URL == "" {
		r.URL = defaultRedisURL
	}
	if r.SessionTTL == 0 {
		r.SessionTTL = defaultSessionTTLHours * time.Hour
	}
}

func setBackendDefaults(b *BackendConfig) {
	if b.Timeout == 0 {
		b.Timeout = defaultBackendTimeoutSec * time.Second
	}
	if b.RequestsPerSec == 0 {
		b.RequestsPerSec = defaultBackendRPS
	}
	if b.Burst == 0 {
		b.Burst = defaultBackendBurst
	}
}

func setAlertsDefaults(a *AlertsConfig) {
	if a.AuditLogPath == "" {
		a.AuditLogPath = defaultAuditLogPath
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
