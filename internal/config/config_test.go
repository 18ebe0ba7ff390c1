//nolint:testpackage // Testing internal config requires same package access
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: riskcore\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "riskcore", cfg.Service.Name)
	assert.Equal(t, defaultServicePort, cfg.Service.Port)
	assert.Equal(t, defaultConcurrency, cfg.Service.Concurrency)
	assert.Equal(t, defaultSweepIntervalSec*time.Second, cfg.Service.SweepInterval)
	assert.Equal(t, defaultDBHost, cfg.Database.Host)
	assert.Equal(t, defaultDBPort, cfg.Database.Port)
	assert.Equal(t, defaultMongoURI, cfg.Mongo.URI)
	assert.False(t, cfg.Mongo.Enabled)
	assert.Equal(t, defaultSessionTTLHours*time.Hour, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.Backend.URL)
	assert.Equal(t, defaultBackendTimeoutSec*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, defaultAuditLogPath, cfg.Alerts.AuditLogPath)
	assert.Equal(t, defaultLogLevel, cfg.Logging.Level)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
service:
  port: 9090
  concurrency: 4
  sweep_interval: 2m
database:
  host: db.internal
  port: 5433
backend:
  url: http://llm.internal:8000
  timeout: 15s
alerts:
  audit_log_path: /var/lib/riskcore/audit.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, 4, cfg.Service.Concurrency)
	assert.Equal(t, 2*time.Minute, cfg.Service.SweepInterval)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "http://llm.internal:8000", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/var/lib/riskcore/audit.db", cfg.Alerts.AuditLogPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "service:\n  port: 9090\n")

	t.Setenv("RISKCORE_PORT", "7070")
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("MONGO_ENABLED", "true")
	t.Setenv("BACKEND_URL", "http://llm.internal:8000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Service.Port, "env must win over the file value")
	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.True(t, cfg.Mongo.Enabled)
	assert.Equal(t, "http://llm.internal:8000", cfg.Backend.URL)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, defaultServiceName, cfg.Service.Name)
	assert.Equal(t, defaultServicePort, cfg.Service.Port)
	assert.Equal(t, defaultAuditLogPath, cfg.Alerts.AuditLogPath)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
