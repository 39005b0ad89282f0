// Package apperrors defines the error taxonomy surfaced to API clients.
// Services wrap these sentinels with context; handlers map them to HTTP
// statuses with errors.Is. Anything outside the taxonomy is logged and
// collapsed to a generic internal failure.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Validationf wraps ErrValidation with a user-correctable message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound naming the missing entity.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Forbiddenf wraps ErrForbidden with the denial reason.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with the violated uniqueness rule.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
