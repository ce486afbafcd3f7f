package services

import (
	"errors"
	"fmt"

	"profile-api/internal/models"
	"profile-api/internal/repositories"
)

// Kind classifies a service failure
type Kind int

const (
	// KindInternal covers anything not otherwise classified
	KindInternal Kind = iota
	// KindInvalidInput is a missing, empty or malformed field
	KindInvalidInput
	// KindConflict is a uniqueness or other integrity violation
	KindConflict
	// KindNotFound means no profile has the requested id
	KindNotFound
	// KindStorage is any other persistence failure
	KindStorage
)

// String returns the log name of the kind
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage_error"
	default:
		return "internal_error"
	}
}

// Error is the single error type returned by services
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Details models.ValidationErrors
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// IsOperational reports a storage failure caused by connectivity rather than
// by the statement itself
func (e *Error) IsOperational() bool {
	return e.Kind == KindStorage && repositories.IsConnection(e.Err)
}

// NewInvalidInputError creates an InvalidInput error
func NewInvalidInputError(op, message string, details models.ValidationErrors) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Message: message, Details: details}
}

// NewNotFoundError creates a NotFound error
func NewNotFoundError(op string, id uint) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("profile %d not found", id)}
}

// KindOf returns the kind of err, or KindInternal when err is not a service error
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// AsError returns err as a service error, classifying foreign errors as internal
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return &Error{Kind: KindInternal, Op: "unknown", Message: "unexpected error", Err: err}
}

// translateError maps a repository error onto the service taxonomy
func translateError(op string, err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var repoErr *repositories.RepositoryError

	switch {
	case repositories.IsValidation(err):
		return &Error{Kind: KindInvalidInput, Op: op, Message: "invalid profile", Details: models.FieldErrors(err), Err: err}
	case errors.Is(err, repositories.ErrInvalidID):
		return &Error{Kind: KindInvalidInput, Op: op, Message: "invalid profile id", Err: err}
	case repositories.IsNotFound(err):
		return &Error{Kind: KindNotFound, Op: op, Message: "profile not found", Err: err}
	case repositories.IsIntegrity(err):
		return &Error{Kind: KindConflict, Op: op, Message: "integrity violation", Err: err}
	case errors.As(err, &repoErr):
		return &Error{Kind: KindStorage, Op: op, Message: "storage failure", Err: err}
	}

	return &Error{Kind: KindInternal, Op: op, Message: "unexpected error", Err: err}
}
