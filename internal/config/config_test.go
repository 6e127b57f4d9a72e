package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  driver: sqlite
  sqlite_path: /tmp/sim.db
latency:
  min: 0s
  max: 50ms
jwt:
  secret: s3cret
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/sim.db", cfg.Storage.SQLitePath)
	assert.Equal(t, time.Duration(0), cfg.Latency.Min)
	assert.Equal(t, 50*time.Millisecond, cfg.Latency.Max)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("DATINGSIM_JWT_SECRET", "from-env")
	t.Setenv("DATINGSIM_SERVER_PORT", "7000")
	t.Setenv("DATINGSIM_STORAGE_DB_NAME", "dating")
	t.Setenv("DATINGSIM_LATENCY_MAX", "1s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "dating", cfg.Storage.Database.DBName)
	assert.Equal(t, time.Second, cfg.Latency.Max)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DATINGSIM_JWT_SECRET", "x")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "server: [\n"},
		{name: "missing secret", body: "server:\n  port: 80\n"},
		{name: "inverted latency", body: "jwt:\n  secret: x\nlatency:\n  min: 2s\n  max: 1s\n"},
		{name: "bad port", body: "jwt:\n  secret: x\nserver:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", db.DSN())
}
