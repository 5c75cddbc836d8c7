// Package errors provides error types and handling for keyhandler.
// It includes a custom error type carrying an error code and the process exit code policy.
package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application error with an associated error code.
type AppError struct {
	// Code is an error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	// Local input errors. The run stops before any provider call.
	ErrCodeUsage        = "USAGE_ERROR"
	ErrCodePrecondition = "PRECONDITION_FAILED"
	ErrCodeConfig       = "CONFIG_ERROR"

	// Provider errors. DryRun and Unauthorized are soft: the run moves on to the next region.
	ErrCodeDryRun       = "DRY_RUN"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeProvider     = "PROVIDER_ERROR"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// New creates an AppError with the given code.
func New(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrUsage creates a usage error for bad or missing command line input.
func ErrUsage(message string, cause error) *AppError {
	return New(ErrCodeUsage, message, cause)
}

// ErrPrecondition creates an error for a local precondition such as a missing key file.
func ErrPrecondition(message string, cause error) *AppError {
	return New(ErrCodePrecondition, message, cause)
}

// ErrConfig creates a configuration error.
func ErrConfig(message string, cause error) *AppError {
	return New(ErrCodeConfig, message, cause)
}

// ErrDryRun creates the error reported when a dry run would have succeeded.
func ErrDryRun(message string, cause error) *AppError {
	return New(ErrCodeDryRun, message, cause)
}

// ErrUnauthorized creates the error reported when the caller lacks permission in a region.
func ErrUnauthorized(message string, cause error) *AppError {
	return New(ErrCodeUnauthorized, message, cause)
}

// ErrProvider creates a hard provider failure that aborts the run.
func ErrProvider(message string, cause error) *AppError {
	return New(ErrCodeProvider, message, cause)
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}

// IsSoft reports whether err is a provider failure after which the run continues.
func IsSoft(err error) bool {
	switch GetErrorCode(err) {
	case ErrCodeDryRun, ErrCodeUnauthorized:
		return true
	default:
		return false
	}
}

// ExitCode maps an error returned by a run to the process exit code.
func ExitCode(err error) int {
	if err == nil || IsSoft(err) {
		return ExitOK
	}
	return ExitFailure
}
