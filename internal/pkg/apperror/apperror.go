package apperror

import "net/http"

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation marks malformed or missing input. Never retried automatically.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound marks a missing branch, room or reservation.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict marks a booking rejected because its time range is already taken.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// Policy marks a request that is well-formed but not allowed by business
// rules, like cancelling inside the 24-hour window.
func Policy(message string) *AppError {
	return New(http.StatusUnprocessableEntity, message)
}

// Unavailable marks a transient storage or upstream failure. The client may
// retry; the server never retries on its own.
func Unavailable(err error, message string) *AppError {
	return Wrap(err, http.StatusServiceUnavailable, message)
}
