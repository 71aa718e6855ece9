// Package apperrors defines the error taxonomy shared by repositories and
// handlers. Every user-visible failure carries a machine-readable kind and a
// human-readable message; internal error detail never leaves the process.
package apperrors

import "fmt"

type Kind int

const (
	Internal Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Conflict
	InvalidOperation
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidOperation:
		return "invalid_operation"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "internal"
	}
}

// FieldError is a single field-level constraint violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the application error type. Err keeps the underlying cause for
// logs; it is never rendered to clients.
type AppError struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause for logging.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// Validation builds a ValidationFailed error from field violations.
func Validation(fields ...FieldError) *AppError {
	return &AppError{
		Kind:    ValidationFailed,
		Message: "validation failed",
		Fields:  fields,
	}
}
