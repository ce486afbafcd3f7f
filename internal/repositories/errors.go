package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEntry is returned when a unique column already holds the value
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidID is returned when an invalid ID is provided
	ErrInvalidID = errors.New("invalid ID")

	// ErrValidation is returned when entity validation fails
	ErrValidation = errors.New("validation error")

	// ErrTransaction is returned when a transaction operation fails
	ErrTransaction = errors.New("transaction error")

	// ErrConnection is returned when the database cannot be reached or used
	ErrConnection = errors.New("database connection error")

	// ErrConstraint is returned when a database constraint other than uniqueness is violated
	ErrConstraint = errors.New("constraint violation")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      string // Entity ID (if applicable)
	Err     error  // Sentinel or driver error
	Cause   error  // Driver error behind a sentinel, if any
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != "" {
		return fmt.Sprintf("%s %s operation failed for ID %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the driver error to errors.Is/As
func (e *RepositoryError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity, id string) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %s not found", entity, id),
	}
}

// DuplicateError creates a "duplicate entry" repository error
func DuplicateError(op, entity, field string, cause error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     ErrDuplicateEntry,
		Cause:   cause,
		Message: fmt.Sprintf("%s with this %s already exists", entity, field),
	}
}

// ValidationError creates a "validation" repository error
func ValidationError(entity, id string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "validate",
		Entity:  entity,
		ID:      id,
		Err:     ErrValidation,
		Cause:   err,
		Message: fmt.Sprintf("validation failed for %s: %v", entity, err),
	}
}

// ConstraintError creates a "constraint violation" repository error
func ConstraintError(op, entity string, cause error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     ErrConstraint,
		Cause:   cause,
		Message: fmt.Sprintf("constraint violation for %s: %v", entity, cause),
	}
}

// TransactionError creates a "transaction" repository error
func TransactionError(op string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  "transaction",
		Err:     ErrTransaction,
		Cause:   err,
		Message: fmt.Sprintf("transaction %s failed: %v", op, err),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(op, entity string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     ErrConnection,
		Cause:   err,
		Message: fmt.Sprintf("database connection failed: %v", err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate checks if an error is a "duplicate entry" error
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConstraint checks if an error is a "constraint violation" error
func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}

// IsIntegrity reports any integrity violation: duplicates and other constraints
func IsIntegrity(err error) bool {
	return IsDuplicate(err) || IsConstraint(err)
}

// IsTransaction checks if an error is a "transaction" error
func IsTransaction(err error) bool {
	return errors.Is(err, ErrTransaction)
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}
