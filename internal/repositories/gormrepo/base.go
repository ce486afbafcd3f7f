package gormrepo

import (
	"context"
	"strconv"
	"time"

	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type txKey struct{}

// withTx stores an open transaction in the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext returns the transaction opened by the TransactionManager, if any
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// BaseRepository provides common functionality for all gorm repositories
type BaseRepository[T any] struct {
	db     *gorm.DB
	entity string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](db *gorm.DB, entity string, logger *logrus.Logger) *BaseRepository[T] {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository[T]{
		db:     db,
		entity: entity,
		logger: logger,
	}
}

// getDB joins the caller's transaction when there is one
func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Count returns the total number of entities
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	start := time.Now()

	var count int64
	err := r.getDB(ctx).Model(new(T)).Count(&count).Error
	r.logOperation("count", "", time.Since(start), err)
	if err != nil {
		return 0, classifyError("count", r.entity, "", err)
	}
	return count, nil
}

// Exists checks if an entity with the given ID exists
func (r *BaseRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	if err := r.validateID(id); err != nil {
		return false, err
	}

	start := time.Now()

	var count int64
	err := r.getDB(ctx).Model(new(T)).Where("id = ?", id).Limit(1).Count(&count).Error
	r.logOperation("exists", formatID(id), time.Since(start), err)
	if err != nil {
		return false, classifyError("exists", r.entity, formatID(id), err)
	}
	return count > 0, nil
}

// logOperation logs a repository call with its execution time
func (r *BaseRepository[T]) logOperation(operation, id string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"entity":    r.entity,
		"duration":  duration,
	}
	if id != "" {
		fields["id"] = id
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Debug("Repository operation failed")
	} else {
		r.logger.WithFields(fields).Debug("Repository operation completed")
	}
}

// validateID rejects the zero ID, which gorm treats as "no primary key"
func (r *BaseRepository[T]) validateID(id uint) error {
	if id == 0 {
		return repositories.NewRepositoryError("validate", r.entity, "0", repositories.ErrInvalidID)
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
