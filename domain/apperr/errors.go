// Package apperr defines the error kinds shared by the identity and task
// stores, and the result shape used to carry them between modules.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a required field is empty or malformed.
	ErrValidation = errors.New("validation error")
	// ErrNoFieldsProvided is returned by partial updates that change nothing.
	ErrNoFieldsProvided = fmt.Errorf("%w: no fields provided", ErrValidation)
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUserNotFound is returned when no user matches a lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when a password does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned when a task does not exist for the acting user.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps any failure of the underlying store.
	ErrPersistence = errors.New("persistence error")
	// ErrUnauthorized is returned for missing, invalid or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error codes carried across module boundaries.
const (
	CodeValidation         = "validation_error"
	CodeNoFieldsProvided   = "no_fields_provided"
	CodeDuplicateUsername  = "duplicate_username"
	CodeUserNotFound       = "user_not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeNotFound           = "not_found"
	CodePersistence        = "persistence_error"
	CodeUnauthorized       = "unauthorized"
	CodeInternal           = "internal_error"
)

// ordered from most to least specific; ErrNoFieldsProvided must precede ErrValidation.
var codes = []struct {
	code string
	err  error
}{
	{CodeNoFieldsProvided, ErrNoFieldsProvided},
	{CodeValidation, ErrValidation},
	{CodeDuplicateUsername, ErrDuplicateUsername},
	{CodeUserNotFound, ErrUserNotFound},
	{CodeInvalidCredentials, ErrInvalidCredentials},
	{CodeNotFound, ErrNotFound},
	{CodePersistence, ErrPersistence},
	{CodeUnauthorized, ErrUnauthorized},
}

// Validation builds a validation error with a descriptive message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Persistence wraps a storage failure. The driver error is flattened into the
// message so callers can only match on ErrPersistence.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// CodeOf returns the code for the most specific known kind in err's chain.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// FromCode rebuilds an error received from another module so that errors.Is
// matches the sentinel it was built from.
func FromCode(code, message string) error {
	for _, c := range codes {
		if c.code == code {
			return &remoteError{kind: c.err, message: message}
		}
	}
	return errors.New(message)
}

type remoteError struct {
	kind    error
	message string
}

func (e *remoteError) Error() string {
	if e.message == "" {
		return e.kind.Error()
	}
	return e.message
}

func (e *remoteError) Unwrap() error {
	return e.kind
}
