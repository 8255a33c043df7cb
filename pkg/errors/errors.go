package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is deliberately identical for an unknown
	// email and a wrong password; callers must not distinguish them.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("this email is already registered")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrRegistrationFailed = errors.New("registration failed")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FieldErrors aggregates per-field validation messages so a form can be
// re-rendered with every problem shown at once.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}
