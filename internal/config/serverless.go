package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"profile-api/internal/repositories"
)

// Serverless platforms
const (
	PlatformLambda         = "aws-lambda"
	PlatformCloudFunctions = "gcp-cloud-functions"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	Platform     string
	FunctionName string
	Region       string
	Stage        string
}

// IsServerless reports whether a serverless platform was detected
func (s *ServerlessConfig) IsServerless() bool {
	return s.Platform != ""
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration detected at first use
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = DetectServerless()
	})
	return serverlessConfig
}

// DetectServerless inspects the environment variables each platform sets
func DetectServerless() *ServerlessConfig {
	switch {
	case os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "":
		return &ServerlessConfig{
			Platform:     PlatformLambda,
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	case os.Getenv("K_SERVICE") != "" || os.Getenv("FUNCTION_TARGET") != "":
		return &ServerlessConfig{
			Platform:     PlatformCloudFunctions,
			FunctionName: GetEnv("K_SERVICE", os.Getenv("FUNCTION_TARGET")),
			Region:       os.Getenv("FUNCTION_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	}
	return &ServerlessConfig{Stage: GetEnv("STAGE", "dev")}
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsServerless()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless moves the default SQLite file somewhere writable
// on serverless platforms, or switches to PostgreSQL when RDS_ENDPOINT is set.
// Explicitly configured databases are left alone.
func AdaptConfigForServerless(ctx context.Context, config *Config, env *ServerlessConfig) *Config {
	if env == nil || !env.IsServerless() {
		return config
	}

	db := &config.Database
	usesDefault := db.Driver == repositories.DriverSQLite && db.ConnectionString == DefaultSQLitePath
	if !usesDefault {
		return config
	}

	if os.Getenv("RDS_ENDPOINT") != "" {
		db.Driver = repositories.DriverPostgres
		db.ConnectionString = buildRDSConnectionString()
		db.MaxOpenConns = GetEnvAsInt("RDS_MAX_OPEN_CONNS", 2)
		db.MaxIdleConns = min(db.MaxIdleConns, db.MaxOpenConns)
	} else {
		dir := GetEnv("EFS_MOUNT_PATH", os.TempDir())
		db.ConnectionString = filepath.Join(dir, filepath.Base(DefaultSQLitePath))
	}

	logrus.WithFields(logrus.Fields{
		"platform": env.Platform,
		"function": env.FunctionName,
		"driver":   db.Driver,
	}).Info("Adapted database configuration for serverless")

	return config
}

// buildRDSConnectionString constructs a PostgreSQL URL from the RDS_* variables
func buildRDSConnectionString() string {
	host := os.Getenv("RDS_ENDPOINT")
	port := GetEnv("RDS_PORT", "5432")
	dbname := GetEnv("RDS_DB_NAME", "profiles")

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("RDS_USERNAME"), os.Getenv("RDS_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + dbname,
		RawQuery: "sslmode=" + GetEnv("RDS_SSLMODE", "require"),
	}
	return dsn.String()
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	// Apply serverless adaptations if needed
	config = AdaptConfigForServerless(context.Background(), config, GetServerlessConfig())

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
