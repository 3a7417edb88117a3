package errors

import (
	"errors"
	"fmt"
)

// Category represents the subsystem an error originates from.
type Category string

const (
	CategoryDOM      Category = "dom"
	CategoryRender   Category = "render"
	CategoryProtocol Category = "protocol"
	CategoryLive     Category = "live"
	CategoryConfig   Category = "config"
)

// Error is a structured error with a stable code and category.
type Error struct {
	// Code is a unique error identifier (e.g., "E_DOM_DUPLICATE_ID").
	Code string

	// Category is the originating subsystem.
	Category Category

	// Message is a short description of the error.
	Message string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is the same coded error. Two structured errors
// match when their codes match, so sentinel values can be wrapped with
// context and still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// New creates a structured error.
func New(category Category, code, message string) *Error {
	return &Error{Code: code, Category: category, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(category Category, code, format string, args ...any) *Error {
	return &Error{Code: code, Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and category. Returns nil if err is nil.
func Wrap(err error, category Category, code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Category: category, Message: message, Wrapped: err}
}
