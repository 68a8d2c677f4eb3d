package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindBadRequest   Kind = "BAD_REQUEST"
	KindNotFound     Kind = "NOT_FOUND"
	KindForbidden    Kind = "FORBIDDEN"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// AppError is an error that has already been classified into one of the known kinds.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequest creates a BAD_REQUEST error.
func BadRequest(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

// NotFound creates a NOT_FOUND error.
func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// Forbidden creates a FORBIDDEN error.
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// Unauthorized creates an UNAUTHORIZED error.
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// As returns the AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// Wrap returns err unchanged when it is already classified, otherwise it
// returns a BAD_REQUEST error carrying message and err as its cause.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return &AppError{Kind: KindBadRequest, Message: message, Err: err}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps application errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	appErr, ok := As(err)
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch appErr.Kind {
	case KindBadRequest:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, string(appErr.Kind))
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, appErr.Message, string(appErr.Kind))
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, appErr.Message, string(appErr.Kind))
	case KindUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, string(appErr.Kind))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
