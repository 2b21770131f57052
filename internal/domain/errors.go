package domain

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrorCode is the kind of failure reported to callers
type ErrorCode string

const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
)

// AppError is the single error type crossing the service boundary.
// Message is safe to show to a user; Err keeps the underlying cause for
// logs and the development-only details channel.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Entity  string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewUnauthorizedError() *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: "authentication required"}
}

func NewForbiddenError(entity string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Entity: entity, Message: fmt.Sprintf("not allowed to modify this %s", entity)}
}

func NewNotFoundError(entity string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Entity: entity, Message: fmt.Sprintf("%s not found", entity)}
}

// NewValidationError carries the first violated field and its message
func NewValidationError(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Field: field, Message: message}
}

func NewConflictError(err error) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: "conflicting data", Err: err}
}

func NewDatabaseError(err error) *AppError {
	return &AppError{Code: ErrCodeDatabase, Message: "storage operation failed", Err: err}
}

// ErrInvalidContactForCustomer is returned when a referenced contact belongs to another customer
var ErrInvalidContactForCustomer = NewValidationError("contact_id", "invalid contact for this customer")

// Postgres SQLSTATE codes the mapper cares about
const (
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	pgCheckViolation        = "23514"
	pgNotNullViolation      = "23502"
	pgInvalidTextFormat     = "22P02"
	pgInsufficientPrivilege = "42501"
)

// MapStorageError converts any lower-level failure into an *AppError.
// Errors that are already an *AppError pass through unchanged.
func MapStorageError(err error, entity string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFoundError(entity)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation, pgForeignKeyViolation:
			return NewConflictError(err)
		case pgCheckViolation, pgNotNullViolation, pgInvalidTextFormat:
			return &AppError{Code: ErrCodeValidation, Message: "invalid value", Err: err}
		case pgInsufficientPrivilege:
			// row-level security rejected the write
			return &AppError{Code: ErrCodeForbidden, Entity: entity, Message: fmt.Sprintf("not allowed to modify this %s", entity), Err: err}
		}
	}

	return NewDatabaseError(err)
}

// IsCode reports whether err is an *AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
