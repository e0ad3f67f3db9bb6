package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrUserNotFound is returned when a user lookup finds no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationError is a field-level registration failure. Its JSON form is
// returned verbatim as the 422 response body.
type ValidationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a 422 validation error for the given field.
func NewValidationError(message, location string) *ValidationError {
	return &ValidationError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   "ValidationError",
		Message:  message,
		Location: location,
	}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Goals owned by another
// user map to 404 exactly like missing ones, and all credential failures
// collapse to a single 401.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrGoalNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GOAL_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
