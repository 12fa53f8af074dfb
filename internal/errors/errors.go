package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeThrottled indicates the backing store rejected the request due to rate limiting.
	ErrCodeThrottled ErrorCode = "throttled"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates an operation exceeded its deadline.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates an operation was canceled before completing.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeSecretUnavailable indicates the secret store was unreachable or the
	// secret is absent/empty. Fatal to the renewal invocation.
	ErrCodeSecretUnavailable ErrorCode = "secret_unavailable"
	// ErrCodeIssuanceFailed indicates the certificate authority did not issue a
	// certificate. Fatal to the renewal invocation.
	ErrCodeIssuanceFailed ErrorCode = "issuance_failed"
	// ErrCodeReconcileFailed indicates the certificate store rejected the import.
	// Distinct from issuance failure so operators can tell "got a cert but
	// couldn't store it" from "never got a cert". Fatal to the invocation.
	ErrCodeReconcileFailed ErrorCode = "reconcile_failed"
	// ErrCodeNotifyFailed indicates notification delivery failed. Logged only,
	// never escalated.
	ErrCodeNotifyFailed ErrorCode = "notify_failed"
	// ErrCodeStateConflict indicates the compute resource was already in the
	// requested state (e.g. instance already running). Callers treat the
	// already-running case as a success-equivalent no-op.
	ErrCodeStateConflict ErrorCode = "state_conflict"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Throttled creates a new Throttled error.
func Throttled(message string) *AppError {
	return &AppError{Code: ErrCodeThrottled, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// SecretUnavailable creates a new SecretUnavailable error.
func SecretUnavailable(message string) *AppError {
	return &AppError{Code: ErrCodeSecretUnavailable, Message: message}
}

// IssuanceFailed creates a new IssuanceFailed error.
func IssuanceFailed(message string) *AppError {
	return &AppError{Code: ErrCodeIssuanceFailed, Message: message}
}

// ReconcileFailed creates a new ReconcileFailed error.
func ReconcileFailed(message string) *AppError {
	return &AppError{Code: ErrCodeReconcileFailed, Message: message}
}

// NotifyFailed creates a new NotifyFailed error.
func NotifyFailed(message string) *AppError {
	return &AppError{Code: ErrCodeNotifyFailed, Message: message}
}

// StateConflict creates a new StateConflict error.
func StateConflict(message string) *AppError {
	return &AppError{Code: ErrCodeStateConflict, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsThrottled checks if an error is a Throttled error.
func IsThrottled(err error) bool {
	return isCode(err, ErrCodeThrottled)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsSecretUnavailable checks if an error is a SecretUnavailable error.
func IsSecretUnavailable(err error) bool {
	return isCode(err, ErrCodeSecretUnavailable)
}

// IsIssuanceFailed checks if an error is an IssuanceFailed error.
func IsIssuanceFailed(err error) bool {
	return isCode(err, ErrCodeIssuanceFailed)
}

// IsReconcileFailed checks if an error is a ReconcileFailed error.
func IsReconcileFailed(err error) bool {
	return isCode(err, ErrCodeReconcileFailed)
}

// IsStateConflict checks if an error is a StateConflict error.
func IsStateConflict(err error) bool {
	return isCode(err, ErrCodeStateConflict)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
