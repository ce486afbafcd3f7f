package gormrepo

import (
	"context"

	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionManager implements repositories.TransactionManager with gorm
type TransactionManager struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewTransactionManager creates a new gorm transaction manager
func NewTransactionManager(db *gorm.DB, logger *logrus.Logger) repositories.TransactionManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &TransactionManager{
		db:     db,
		logger: logger,
	}
}

// WithTransaction executes fn within a transaction. A context that already
// carries a transaction is reused so nested calls share one unit of work.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		tm.logger.WithError(tx.Error).Error("Failed to begin transaction")
		if classify(tx.Error) == classConnection {
			return repositories.ConnectionError("begin", "transaction", tx.Error)
		}
		return repositories.TransactionError("begin", tx.Error)
	}
	tm.logger.Debug("Transaction started successfully")

	// Ensure transaction is cleaned up
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r) // Re-throw panic after cleanup
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			tm.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		} else {
			tm.logger.Debug("Transaction rolled back successfully")
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tm.logger.WithError(err).Error("Failed to commit transaction")
		if classify(err) == classConnection {
			return repositories.ConnectionError("commit", "transaction", err)
		}
		return repositories.TransactionError("commit", err)
	}

	tm.logger.Debug("Transaction committed successfully")
	return nil
}
