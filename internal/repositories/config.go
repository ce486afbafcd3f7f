package repositories

import (
	"errors"
	"fmt"
	"time"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config represents repository configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Connection pool configuration
	Pool PoolConfig `json:"pool" yaml:"pool"`

	// Query configuration
	Query QueryConfig `json:"query" yaml:"query"`

	// AutoMigrate creates the schema on startup when it is missing
	AutoMigrate bool `json:"auto_migrate" yaml:"auto_migrate"`
}

// DatabaseConfig represents database-specific configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (sqlite, postgres, mysql)
	Driver string `json:"driver" yaml:"driver"`

	// DSN is the data source name / connection string
	DSN string `json:"dsn" yaml:"dsn"`

	// Path is the database file path (for SQLite)
	Path string `json:"path" yaml:"path"`

	// Foreign key constraints
	ForeignKeys bool `json:"foreign_keys" yaml:"foreign_keys"`

	// Synchronous mode for SQLite
	Synchronous string `json:"synchronous" yaml:"synchronous"`

	// Journal mode for SQLite
	JournalMode string `json:"journal_mode" yaml:"journal_mode"`

	// Busy timeout for SQLite (in milliseconds)
	BusyTimeout int `json:"busy_timeout" yaml:"busy_timeout"`

	// TxLock is the SQLite BEGIN mode; immediate takes the write lock up front
	TxLock string `json:"tx_lock" yaml:"tx_lock"`
}

// PoolConfig represents connection pool configuration
type PoolConfig struct {
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time"`
}

// QueryConfig represents query-specific configuration
type QueryConfig struct {
	// SlowQueryThreshold is the threshold for logging slow queries
	SlowQueryThreshold time.Duration `json:"slow_query_threshold" yaml:"slow_query_threshold"`

	// EnableQueryLogging logs every statement at debug level
	EnableQueryLogging bool `json:"enable_query_logging" yaml:"enable_query_logging"`
}

// HealthStatus represents the health status of the database
type HealthStatus struct {
	Healthy      bool              `json:"healthy"`
	Driver       string            `json:"driver"`
	Message      string            `json:"message"`
	CheckedAt    time.Time         `json:"checked_at"`
	ResponseTime time.Duration     `json:"response_time"`
	Details      map[string]string `json:"details,omitempty"`
}

// DefaultConfig returns a default repository configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      DriverSQLite,
			Path:        "data/profiles.db",
			ForeignKeys: true,
			Synchronous: "NORMAL",
			JournalMode: "WAL",
			BusyTimeout: 5000,
			TxLock:      "immediate",
		},
		Pool: PoolConfig{
			MaxOpenConns:    1, // SQLite works best with single connection
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: time.Minute * 15,
		},
		Query: QueryConfig{
			SlowQueryThreshold: 500 * time.Millisecond,
			EnableQueryLogging: false,
		},
		AutoMigrate: true,
	}
}

// Validate validates the repository configuration
func (c *Config) Validate() error {
	switch {
	case c.Database.Driver == "":
		return errors.New("database driver is required")
	case c.IsSQLite():
		if c.Database.Path == "" {
			return errors.New("database path is required for SQLite")
		}
	case c.IsPostgreSQL(), c.IsMySQL():
		if c.Database.DSN == "" {
			return errors.New("database DSN is required for non-SQLite databases")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Pool.MaxOpenConns <= 0 {
		return errors.New("max open connections must be greater than 0")
	}

	if c.Pool.MaxIdleConns < 0 {
		return errors.New("max idle connections cannot be negative")
	}

	if c.Pool.MaxIdleConns > c.Pool.MaxOpenConns {
		return errors.New("max idle connections cannot exceed max open connections")
	}

	if c.Query.SlowQueryThreshold < 0 {
		return errors.New("slow query threshold cannot be negative")
	}

	return nil
}

// GetDSN returns the appropriate DSN for the database driver
func (c *Config) GetDSN() string {
	if c.IsSQLite() {
		return c.Database.Path
	}
	return c.Database.DSN
}

// IsSQLite returns true if the database driver is SQLite
func (c *Config) IsSQLite() bool {
	return c.Database.Driver == DriverSQLite || c.Database.Driver == "sqlite3"
}

// IsPostgreSQL returns true if the database driver is PostgreSQL
func (c *Config) IsPostgreSQL() bool {
	return c.Database.Driver == DriverPostgres || c.Database.Driver == "postgresql"
}

// IsMySQL returns true if the database driver is MySQL
func (c *Config) IsMySQL() bool {
	return c.Database.Driver == DriverMySQL
}
