package repositories

import (
	"context"
)

// TransactionManager runs a unit of work. Repository calls made with the
// context passed to fn join the open transaction; it is committed when fn
// returns nil and rolled back on error or panic.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
