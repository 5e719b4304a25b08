// Package errors defines the error taxonomy shared by the storage layer, the
// HTTP gateway and the remote client. Every failure a caller can observe is
// one of the five kinds below; transport and driver errors never leak past
// the gateway.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error kind.
type Code string

const (
	CodeValidation       Code = "validation_error"
	CodeUnauthorized     Code = "unauthorized"
	CodeNotFound         Code = "not_found"
	CodeMethodNotAllowed Code = "method_not_allowed"
	CodeInternal         Code = "internal_error"
)

// ServiceError is the client-facing error shape. Message is safe to return
// to callers; wrapped causes are for server-side logs only.
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	cause      error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *ServiceError) Unwrap() error { return e.cause }

// Is reports kind equality so sentinel-style comparisons work across
// independently constructed instances.
func (e *ServiceError) Is(target error) bool {
	var se *ServiceError
	if errors.As(target, &se) {
		return se.Code == e.Code
	}
	return false
}

// WithDetails attaches a key/value pair for diagnostics.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation constructs a 400-kind error.
func Validation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Unauthorized constructs a 401-kind error.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "unauthorized"
	}
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NotFound constructs a 404-kind error.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// MethodNotAllowed constructs a 405-kind error.
func MethodNotAllowed(method string) *ServiceError {
	return &ServiceError{
		Code:       CodeMethodNotAllowed,
		Message:    fmt.Sprintf("method %s not allowed", method),
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// Internal constructs a 500-kind error wrapping the cause. The message must
// stay generic; the cause is logged server-side only.
func Internal(message string, cause error) *ServiceError {
	if message == "" {
		message = "internal error"
	}
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, cause: cause}
}

// FromCode rebuilds a taxonomy error from its wire code. Unknown codes map
// to internal so a misbehaving peer cannot invent new kinds.
func FromCode(code Code, message string) *ServiceError {
	switch code {
	case CodeValidation:
		return Validation(message)
	case CodeUnauthorized:
		return Unauthorized(message)
	case CodeNotFound:
		return NotFound(message)
	case CodeMethodNotAllowed:
		return &ServiceError{Code: CodeMethodNotAllowed, Message: message, HTTPStatus: http.StatusMethodNotAllowed}
	default:
		return Internal(message, nil)
	}
}

// GetServiceError extracts a ServiceError from err, or nil when err carries
// no taxonomy kind.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// IsNotFound reports whether err is the not-found kind.
func IsNotFound(err error) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == CodeNotFound
}

// IsValidation reports whether err is the validation kind.
func IsValidation(err error) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == CodeValidation
}

// IsUnauthorized reports whether err is the unauthorized kind.
func IsUnauthorized(err error) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == CodeUnauthorized
}
