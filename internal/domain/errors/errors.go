package errors

import (
	"net/http"

	"primeform/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Transport-related errors
	ErrTimeout = NewBaseError(
		http.StatusRequestTimeout,
		"REQUEST_TIMEOUT",
		"the request exceeded its allotted duration",
		"",
	)

	ErrAuthInvalidated = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_INVALIDATED",
		"the stored credential was rejected and has been cleared",
		"",
	)

	ErrNoCredential = NewBaseError(
		http.StatusUnauthorized,
		"NO_CREDENTIAL",
		"no credential is stored for the current session",
		"",
	)

	// Auth flow errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"this email is already registered",
		"",
	)

	ErrTokenUnusable = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_UNUSABLE",
		"the issued token does not carry a recoverable user id",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"no user is currently signed in",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input data failed validation",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"the requested resource was not found",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// HTTPError represents a non-success server response that does not match a
// tolerated soft-absence shape, implementing the AppError interface.
type HTTPError struct {
	status  int
	message string
	details string
}

// NewHTTPError creates an error carrying the server's status and message.
func NewHTTPError(status int, message, details string) *HTTPError {
	return &HTTPError{
		status:  status,
		message: message,
		details: details,
	}
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code the server responded with
func (e *HTTPError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *HTTPError) ErrorCode() string {
	return "HTTP_ERROR"
}

// Message returns the server-provided error message
func (e *HTTPError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *HTTPError) Details() string {
	return e.details
}

// IsHTTPStatus reports whether err carries an HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.HTTPCode() == status
	}

	return false
}
