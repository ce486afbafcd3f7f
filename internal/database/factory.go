package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"profile-api/internal/repositories"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectionFactory creates and manages database connections
type ConnectionFactory struct {
	logger *logrus.Logger
}

// NewConnectionFactory creates a new connection factory
func NewConnectionFactory(logger *logrus.Logger) *ConnectionFactory {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConnectionFactory{
		logger: logger,
	}
}

// CreateConnection opens a gorm session for the configured driver, sizes the
// pool and verifies the connection with a ping.
func (f *ConnectionFactory) CreateConnection(ctx context.Context, config *repositories.Config) (*gorm.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dialector, err := f.dialector(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(f.logger, config.Query),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", config.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	f.configureConnectionPool(db, config)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", config.Database.Driver, err)
	}

	if config.IsSQLite() {
		f.applySQLiteSettings(ctx, db)
	}

	f.logger.WithField("driver", config.Database.Driver).Info("Database connection established")
	return db, nil
}

func (f *ConnectionFactory) dialector(config *repositories.Config) (gorm.Dialector, error) {
	switch {
	case config.IsSQLite():
		dsn, err := f.prepareSQLite(config)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil

	case config.IsPostgreSQL():
		pgConfig, err := pgx.ParseConfig(config.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid PostgreSQL DSN: %w", err)
		}
		f.logger.WithFields(logrus.Fields{
			"driver":   "postgres",
			"host":     pgConfig.Host,
			"port":     pgConfig.Port,
			"database": pgConfig.Database,
		}).Info("Creating PostgreSQL connection")
		return postgres.Open(config.Database.DSN), nil

	case config.IsMySQL():
		myConfig, err := mysqldriver.ParseDSN(config.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
		}
		myConfig.ParseTime = true
		f.logger.WithFields(logrus.Fields{
			"driver":   "mysql",
			"addr":     myConfig.Addr,
			"database": myConfig.DBName,
		}).Info("Creating MySQL connection")
		return mysql.Open(myConfig.FormatDSN()), nil
	}

	return nil, fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
}

// prepareSQLite makes sure the database directory exists and returns the DSN
func (f *ConnectionFactory) prepareSQLite(config *repositories.Config) (string, error) {
	dbPath := config.Database.Path
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return BuildSQLiteDSN(dbPath, config.Database), nil
	}

	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := BuildSQLiteDSN(absPath, config.Database)

	f.logger.WithFields(logrus.Fields{
		"driver": "sqlite",
		"path":   absPath,
		"dsn":    dsn,
	}).Info("Creating SQLite connection")

	return dsn, nil
}

// BuildSQLiteDSN appends go-sqlite3 connection options to a file path
func BuildSQLiteDSN(path string, config repositories.DatabaseConfig) string {
	var options []string

	if config.JournalMode != "" {
		options = append(options, fmt.Sprintf("_journal_mode=%s", config.JournalMode))
	}

	if config.Synchronous != "" {
		options = append(options, fmt.Sprintf("_synchronous=%s", config.Synchronous))
	}

	if config.ForeignKeys {
		options = append(options, "_foreign_keys=on")
	}

	if config.BusyTimeout > 0 {
		options = append(options, fmt.Sprintf("_busy_timeout=%d", config.BusyTimeout))
	}

	if config.TxLock != "" {
		options = append(options, fmt.Sprintf("_txlock=%s", config.TxLock))
	}

	if len(options) == 0 {
		return path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(options, "&")
}

// applySQLiteSettings applies pragmas that cannot be set through the DSN
func (f *ConnectionFactory) applySQLiteSettings(ctx context.Context, db *gorm.DB) {
	settings := []string{
		"PRAGMA temp_store = MEMORY",
		"PRAGMA optimize",
	}

	for _, setting := range settings {
		if err := db.WithContext(ctx).Exec(setting).Error; err != nil {
			f.logger.WithError(err).WithField("setting", setting).Warn("Failed to apply SQLite setting")
		} else {
			f.logger.WithField("setting", setting).Debug("Applied SQLite setting")
		}
	}
}

// configureConnectionPool configures the database connection pool
func (f *ConnectionFactory) configureConnectionPool(db *gorm.DB, config *repositories.Config) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	sqlDB.SetMaxOpenConns(config.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.Pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.Pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.Pool.ConnMaxIdleTime)

	f.logger.WithFields(logrus.Fields{
		"max_open_conns":     config.Pool.MaxOpenConns,
		"max_idle_conns":     config.Pool.MaxIdleConns,
		"conn_max_lifetime":  config.Pool.ConnMaxLifetime,
		"conn_max_idle_time": config.Pool.ConnMaxIdleTime,
	}).Debug("Configured connection pool")
}
