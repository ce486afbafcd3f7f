package database

import (
	"context"
	"fmt"

	"profile-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SchemaModels lists every model whose table the service owns
func SchemaModels() []interface{} {
	return []interface{}{
		&models.Profile{},
	}
}

// EnsureSchema creates missing tables and indexes. Existing tables and rows
// are left in place.
func EnsureSchema(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if logger == nil {
		logger = logrus.New()
	}

	for _, model := range SchemaModels() {
		if err := db.WithContext(ctx).AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.WithField("tables", len(SchemaModels())).Info("Database schema is up to date")
	return nil
}

// SchemaStatus reports whether each owned table exists
func SchemaStatus(ctx context.Context, db *gorm.DB) (map[string]bool, error) {
	status := make(map[string]bool)
	migrator := db.WithContext(ctx).Migrator()

	for _, model := range SchemaModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse %T: %w", model, err)
		}
		status[stmt.Schema.Table] = migrator.HasTable(model)
	}

	return status, nil
}
