package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"profile-api/internal/config"
	"profile-api/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	var (
		driver  = flag.String("driver", cfg.Database.Driver, "Database driver: sqlite, postgres, mysql")
		dsn     = flag.String("db", cfg.Database.ConnectionString, "SQLite file path or database DSN")
		action  = flag.String("action", "up", "Schema action: up, status, validate")
		timeout = flag.Duration("timeout", 30*time.Second, "Overall timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg.Database.Driver = *driver
	cfg.Database.ConnectionString = *dsn
	cfg.Database.LogQueries = *verbose

	repoConfig := cfg.Database.ToRepositoryConfig()
	if err := repoConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid database configuration")
	}

	logger.WithFields(logrus.Fields{
		"driver": repoConfig.Database.Driver,
		"action": *action,
	}).Info("Starting schema tool")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewConnectionFactory(logger).CreateConnection(ctx, repoConfig)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer closeDB(db)

	switch *action {
	case "up":
		err = database.EnsureSchema(ctx, db, logger)
	case "status":
		err = showSchemaStatus(ctx, db)
	case "validate":
		err = validateSchema(ctx, db, logger)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, status, validate")
	}

	if err != nil {
		logger.WithError(err).Fatalf("Schema %s failed", *action)
	}

	logger.Info("Schema tool completed successfully")
}

func showSchemaStatus(ctx context.Context, db *gorm.DB) error {
	status, err := database.SchemaStatus(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get schema status: %w", err)
	}

	tables := make([]string, 0, len(status))
	for table := range status {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Printf("Schema Status:\n")
	for _, table := range tables {
		fmt.Printf("  %-20s present: %t\n", table, status[table])
	}

	return nil
}

func validateSchema(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if err := database.NewHealthChecker(db, logger).CheckHealth(ctx); err != nil {
		return fmt.Errorf("database is not healthy: %w", err)
	}

	status, err := database.SchemaStatus(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get schema status: %w", err)
	}

	for table, present := range status {
		if !present {
			return fmt.Errorf("table %s is missing", table)
		}
	}

	fmt.Println("Schema validation passed successfully")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
