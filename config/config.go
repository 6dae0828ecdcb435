package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/farellandr/encuentro/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Upload   UploadConfig   `yaml:"upload"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Groups   GroupsConfig   `yaml:"groups"`
	Accounts AccountsConfig `yaml:"accounts"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// BaseURL is embedded in attendance credentials, so it must be the
	// address staff phones can reach.
	BaseURL     string   `yaml:"base_url"`
	Mode        string   `yaml:"mode"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type SessionConfig struct {
	Key           string `yaml:"key"`
	Secure        bool   `yaml:"secure"`
	MaxAgeSeconds int    `yaml:"max_age_seconds"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type UploadConfig struct {
	Dir       string `yaml:"dir"`
	MaxSizeMB int64  `yaml:"max_size_mb"`
}

// JobsConfig holds six-field cron specs (seconds first).
type JobsConfig struct {
	SweepEmptyGroups  string `yaml:"sweep_empty_groups"`
	AttendanceSummary string `yaml:"attendance_summary"`
}

type GroupsConfig struct {
	MaxCodeAttempts int `yaml:"max_code_attempts"`
}

type AccountsConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// Load reads the optional YAML file at path, applies environment overrides
// and defaults, then validates the result. An empty path configures from the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	setString := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}
	setInt := func(key string, dst *int) {
		if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
			*dst = val
		}
	}
	setBool := func(key string, dst *bool) {
		if val, err := strconv.ParseBool(os.Getenv(key)); err == nil {
			*dst = val
		}
	}

	setInt("PORT", &c.Server.Port)
	setString("BASE_URL", &c.Server.BaseURL)
	setString("GIN_MODE", &c.Server.Mode)

	setString("DB_HOST", &c.Database.Host)
	setInt("DB_PORT", &c.Database.Port)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.Name)
	setString("DB_SSL_MODE", &c.Database.SSLMode)

	setString("SESSION_KEY", &c.Session.Key)
	setBool("SESSION_SECURE", &c.Session.Secure)

	setString("JWT_SECRET", &c.JWT.Secret)

	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)

	setString("UPLOAD_DIR", &c.Upload.Dir)

	setString("SWEEP_SCHEDULE", &c.Jobs.SweepEmptyGroups)
	setString("SUMMARY_SCHEDULE", &c.Jobs.AttendanceSummary)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Session.MaxAgeSeconds == 0 {
		c.Session.MaxAgeSeconds = 7 * 24 * 60 * 60
	}
	if c.JWT.TokenTTLHours == 0 {
		c.JWT.TokenTTLHours = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "./uploads/"
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = 5
	}
	if c.Jobs.SweepEmptyGroups == "" {
		c.Jobs.SweepEmptyGroups = "0 */10 * * * *"
	}
	if c.Jobs.AttendanceSummary == "" {
		c.Jobs.AttendanceSummary = "0 0 * * * *"
	}
	if c.Groups.MaxCodeAttempts == 0 {
		c.Groups.MaxCodeAttempts = 32
	}
	if c.Accounts.BcryptCost == 0 {
		c.Accounts.BcryptCost = 12
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Session.Secure && len(c.Session.Key) < 32 {
		return fmt.Errorf("session key must be at least 32 characters when secure cookies are enabled")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Groups.MaxCodeAttempts < 1 {
		return fmt.Errorf("groups.max_code_attempts must be positive")
	}
	if c.Accounts.BcryptCost < 4 || c.Accounts.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d", c.Accounts.BcryptCost)
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.Database.Host, c.Database.User, c.Database.Password, c.Database.Name, c.Database.Port, c.Database.SSLMode,
	)
}

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TokenTTLHours) * time.Hour
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Group{}, &models.Payment{}); err != nil {
		return nil, err
	}
	return db, nil
}
