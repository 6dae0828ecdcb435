package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "BASE_URL", "GIN_MODE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"SESSION_KEY", "SESSION_SECURE", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT",
		"UPLOAD_DIR", "SWEEP_SCHEDULE", "SUMMARY_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "encuentro")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "0 */10 * * * *", cfg.Jobs.SweepEmptyGroups)
	assert.Equal(t, 32, cfg.Groups.MaxCodeAttempts)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "host=localhost user= password= dbname=encuentro port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestLoadFileWithOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  base_url: https://encuentro.example.org
database:
  host: db
  name: encuentro
  user: app
jwt:
  secret: from-file
log:
  level: debug
jobs:
  sweep_empty_groups: "0 0 * * * *"
`)
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://encuentro.example.org", cfg.Server.BaseURL)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "app", cfg.Database.User)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "0 0 * * * *", cfg.Jobs.SweepEmptyGroups)
	assert.Equal(t, "0 0 * * * *", cfg.Jobs.AttendanceSummary)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("BadYAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: ["))
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Database: DatabaseConfig{Host: "localhost", Name: "encuentro"},
			JWT:      JWTConfig{Secret: "secret"},
		}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(*Config) {}},
		{name: "NoDatabaseName", mutate: func(c *Config) { c.Database.Name = "" }, wantErr: "database name"},
		{name: "NoDatabaseHost", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "NoJWTSecret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT secret"},
		{name: "BadPort", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "invalid server port"},
		{name: "ShortSecureKey", mutate: func(c *Config) { c.Session.Secure = true; c.Session.Key = "short" }, wantErr: "session key"},
		{name: "InsecureShortKeyAllowed", mutate: func(c *Config) { c.Session.Key = "short" }},
		{name: "BadBcryptCost", mutate: func(c *Config) { c.Accounts.BcryptCost = 40 }, wantErr: "bcrypt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
