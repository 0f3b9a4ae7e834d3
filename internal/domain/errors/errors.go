package errors

import (
	"net/http"

	"plantheon/internal/errors"
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
	// Auth-related errors
	ErrOAuthCodeRequired = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_CODE_REQUIRED",
		"Authorization code is required",
		"",
	)

	ErrOAuthDenied = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_DENIED",
		"Sign-in was cancelled or denied by the identity provider",
		"",
	)

	ErrOAuthExchangeFailed = NewBaseError(
		http.StatusInternalServerError,
		"OAUTH_EXCHANGE_FAILED",
		"Authentication failed",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Please log in to continue",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	// Catalog-related errors
	ErrGardenNotFound = NewBaseError(
		http.StatusNotFound,
		"GARDEN_NOT_FOUND",
		"Garden not found",
		"",
	)

	ErrPlanNotFound = NewBaseError(
		http.StatusNotFound,
		"PLAN_NOT_FOUND",
		"Subscription plan not found",
		"",
	)

	// Booking-flow errors
	ErrFlowNotFound = NewBaseError(
		http.StatusNotFound,
		"FLOW_NOT_FOUND",
		"Booking flow not found",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"Selection is not allowed in the current booking step",
		"",
	)

	ErrSlotUnavailable = NewBaseError(
		http.StatusBadRequest,
		"SLOT_UNAVAILABLE",
		"The selected time is not offered by this garden",
		"",
	)

	ErrOneTimeUnavailable = NewBaseError(
		http.StatusBadRequest,
		"ONE_TIME_UNAVAILABLE",
		"This garden is available to subscribers only",
		"",
	)

	ErrIncompleteSelection = NewBaseError(
		http.StatusConflict,
		"INCOMPLETE_SELECTION",
		"Pick a garden, time and payment plan before confirming",
		"",
	)

	// Booking-management errors
	ErrBookingNotFound = NewBaseError(
		http.StatusNotFound,
		"BOOKING_NOT_FOUND",
		"Booking not found",
		"",
	)

	ErrBookingNotCancellable = NewBaseError(
		http.StatusConflict,
		"BOOKING_NOT_CANCELLABLE",
		"Only upcoming bookings can be cancelled",
		"",
	)

	// Account-related errors
	ErrPaymentMethodNotFound = NewBaseError(
		http.StatusNotFound,
		"PAYMENT_METHOD_NOT_FOUND",
		"Payment method not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// DatabaseExecuteError represents a storage execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a storage-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Storage operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
