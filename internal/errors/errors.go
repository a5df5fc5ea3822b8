// Package errors provides a lightweight structured error type (NotesError)
// for category-based classification in the HTTP adapter and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryQuery      ErrorCategory = "query"

	// Content errors
	CategoryNotFound   ErrorCategory = "not_found"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryParse      ErrorCategory = "parse"

	// External system integration errors
	CategoryGit ErrorCategory = "git"

	// Runtime and infrastructure errors
	CategoryServer   ErrorCategory = "server"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// NotesError is a structured error with category, retryability, and context
type NotesError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for NotesError
type ContextFields map[string]any

// Error implements the error interface
func (e *NotesError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *NotesError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *NotesError) WithContext(key string, value any) *NotesError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new NotesError
func New(category ErrorCategory, severity ErrorSeverity, message string) *NotesError {
	return &NotesError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new NotesError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *NotesError {
	return &NotesError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// Retryable creates a new retryable NotesError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *NotesError {
	return &NotesError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable NotesError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *NotesError {
	return &NotesError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ne, ok := err.(*NotesError); ok {
		return ne.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if ne, ok := err.(*NotesError); ok {
		return ne.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a NotesError
func GetCategory(err error) ErrorCategory {
	if ne, ok := err.(*NotesError); ok {
		return ne.Category
	}
	return CategoryInternal
}
