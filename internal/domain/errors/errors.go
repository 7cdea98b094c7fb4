package errors

import (
	"net/http"

	"greenroute/internal/errors"
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

// Business error codes, one per failure cause of the resolve pipeline
const (
	CodeInvalidOrigin       = "INVALID_ORIGIN"
	CodeInvalidDestination  = "INVALID_DESTINATION"
	CodeAddressNotFound     = "ADDRESS_NOT_FOUND"
	CodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	CodeBackendError        = "BACKEND_ERROR"
	CodeMalformedResponse   = "MALFORMED_RESPONSE"
	CodeResolveInProgress   = "RESOLVE_IN_PROGRESS"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeSessionLimit        = "SESSION_LIMIT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// DefaultBackendMessage is used when the backend fails without an error field
const DefaultBackendMessage = "Failed to fetch route data."

// Predefined error types
var (
	// Local validation, no network attempted
	ErrInvalidOrigin = NewBaseError(
		http.StatusUnprocessableEntity,
		CodeInvalidOrigin,
		`Please enter a complete origin address (e.g., "1600 Pennsylvania Ave, Washington, DC 20500").`,
		"origin",
	)

	ErrInvalidDestination = NewBaseError(
		http.StatusUnprocessableEntity,
		CodeInvalidDestination,
		`Please enter a complete destination address (e.g., "123 Main St, San Francisco, CA 94105").`,
		"destination",
	)

	// ErrAddressNotFound is what the geocoder reports; the orchestrator
	// narrows it to the origin or destination variant below.
	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		CodeAddressNotFound,
		"Unable to find one or both addresses. Please provide complete addresses including city and state.",
		"",
	)

	ErrOriginNotFound = NewBaseError(
		http.StatusNotFound,
		CodeAddressNotFound,
		"Unable to find the origin address. Please check the spelling and try again.",
		"origin",
	)

	ErrDestinationNotFound = NewBaseError(
		http.StatusNotFound,
		CodeAddressNotFound,
		"Unable to find the destination address. Please check the spelling and try again.",
		"destination",
	)

	// Operational failures talking to an external dependency
	ErrProviderUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		CodeProviderUnavailable,
		"A mapping service is temporarily unavailable. Please try again later.",
		"",
	)

	ErrMalformedResponse = NewBaseError(
		http.StatusBadGateway,
		CodeMalformedResponse,
		"Unable to compute route. The route service returned an unexpected response.",
		"",
	)

	ErrResolveInProgress = NewBaseError(
		http.StatusConflict,
		CodeResolveInProgress,
		"A route is already being optimized. Please wait for it to finish.",
		"",
	)

	// Every session is busy and none could be evicted
	ErrSessionLimit = NewBaseError(
		http.StatusServiceUnavailable,
		CodeSessionLimit,
		"Too many active sessions. Please try again later.",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		CodeValidationFailed,
		"Invalid input data.",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		CodeInternalError,
		"Internal server error.",
		"",
	)
)

// BackendError is a failure reported by the route-recommendation backend itself
type BackendError struct {
	status  int
	message string
}

// NewBackendError keeps the server-provided message, or the generic one when blank
func NewBackendError(status int, message string) *BackendError {
	if message == "" {
		message = DefaultBackendMessage
	}

	return &BackendError{status: status, message: message}
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BackendError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *BackendError) ErrorCode() string {
	return CodeBackendError
}

// Message returns the backend message verbatim
func (e *BackendError) Message() string {
	return e.message
}

// Details returns the upstream status code
func (e *BackendError) Details() string {
	return http.StatusText(e.status)
}

// Status returns the HTTP status the backend answered with
func (e *BackendError) Status() int {
	return e.status
}
