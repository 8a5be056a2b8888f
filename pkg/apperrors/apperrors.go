// Package apperrors provides coded application errors for the Echoplay API.
package apperrors

import (
	"fmt"
	"net/http"
)

// Error represents a structured application error.
type Error struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	HTTPStatus int         `json:"-"`
	Details    interface{} `json:"details,omitempty"`
	Err        error       `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error carrying extra details.
func (e *Error) WithDetails(details interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy of the error wrapping another error.
func (e *Error) WithError(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New creates a new Error.
func New(code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Error codes
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"

	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeTokenExpired       = "TOKEN_EXPIRED"

	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeAudioNotFound    = "AUDIO_NOT_FOUND"
	CodePlaylistNotFound = "PLAYLIST_NOT_FOUND"
	CodeTagNotFound      = "TAG_NOT_FOUND"

	CodeEmailTaken       = "EMAIL_TAKEN"
	CodeAlreadyFollowing = "ALREADY_FOLLOWING"
	CodeNotFollowing     = "NOT_FOLLOWING"
	CodeOwnersEmpty      = "OWNERS_EMPTY"
	CodeInvalidTag       = "INVALID_TAG"
)

// Predefined errors
var (
	ErrInternal     = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
	ErrBadRequest   = New(CodeBadRequest, "Bad request", http.StatusBadRequest)
	ErrNotFound     = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrConflict     = New(CodeConflict, "Resource conflict", http.StatusConflict)
	ErrForbidden    = New(CodeForbidden, "Access forbidden", http.StatusForbidden)
	ErrUnauthorized = New(CodeUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrUnavailable  = New(CodeUnavailable, "Service temporarily unavailable", http.StatusServiceUnavailable)

	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
	ErrTokenInvalid       = New(CodeTokenInvalid, "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "Token has expired", http.StatusUnauthorized)
)

// GetHTTPStatus returns the HTTP status code for an error.
// If the error is not an *Error, returns 500.
func GetHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	appErr, ok := err.(*Error)
	if !ok {
		return http.StatusInternalServerError
	}
	return appErr.HTTPStatus
}
