package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"profile-api/internal/repositories"
)

// DefaultSQLitePath is the database file used when nothing else is configured
const DefaultSQLitePath = "./data/profiles.db"

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Database    DatabaseConfig
	HTTP        HTTPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver             string
	ConnectionString   string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	BusyTimeoutMS      int
	AutoMigrate        bool
	LogQueries         bool
	SlowQueryThreshold time.Duration
}

// HTTPConfig holds settings for the HTTP middleware chain
type HTTPConfig struct {
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	EnableSwagger      bool
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", repositories.DriverSQLite)
	viper.SetDefault("DB_CONNECTION_STRING", DefaultSQLitePath)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 1)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 1)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	viper.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("DB_LOG_QUERIES", false)
	viper.SetDefault("DB_SLOW_QUERY_THRESHOLD", "500ms")
	viper.SetDefault("RATE_LIMIT_RPS", 100)
	viper.SetDefault("RATE_LIMIT_BURST", 200)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("MAX_BODY_BYTES", 1<<20)
	viper.SetDefault("ENABLE_SWAGGER", true)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:             strings.ToLower(viper.GetString("DB_DRIVER")),
			ConnectionString:   viper.GetString("DB_CONNECTION_STRING"),
			MaxOpenConns:       viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:    viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			BusyTimeoutMS:      viper.GetInt("DB_BUSY_TIMEOUT_MS"),
			AutoMigrate:        viper.GetBool("DB_AUTO_MIGRATE"),
			LogQueries:         viper.GetBool("DB_LOG_QUERIES"),
			SlowQueryThreshold: viper.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
		},
		HTTP: HTTPConfig{
			RateLimitRPS:       viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:     viper.GetInt("RATE_LIMIT_BURST"),
			CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			MaxBodyBytes:       viper.GetInt64("MAX_BODY_BYTES"),
			EnableSwagger:      viper.GetBool("ENABLE_SWAGGER"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail at first use
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be greater than 0")
	}
	if err := c.Database.ToRepositoryConfig().Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ToRepositoryConfig converts DatabaseConfig to the repository layer's config
func (c *DatabaseConfig) ToRepositoryConfig() *repositories.Config {
	repoConfig := repositories.DefaultConfig()
	repoConfig.Database.Driver = c.Driver

	if repoConfig.IsSQLite() {
		repoConfig.Database.Path = c.ConnectionString
		repoConfig.Database.BusyTimeout = c.BusyTimeoutMS
	} else {
		repoConfig.Database.Path = ""
		repoConfig.Database.DSN = c.ConnectionString
	}

	repoConfig.Pool.MaxOpenConns = c.MaxOpenConns
	repoConfig.Pool.MaxIdleConns = c.MaxIdleConns
	repoConfig.Pool.ConnMaxLifetime = c.ConnMaxLifetime
	repoConfig.Query.EnableQueryLogging = c.LogQueries
	repoConfig.Query.SlowQueryThreshold = c.SlowQueryThreshold
	repoConfig.AutoMigrate = c.AutoMigrate

	return repoConfig
}

// SetupLogger configures the standard logrus logger from config and returns it
func SetupLogger(cfg *Config) *logrus.Logger {
	logger := logrus.StandardLogger()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.IsProduction() || IsServerlessMode() {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
