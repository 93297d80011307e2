package apperrors

import (
	"net/http"
)

// AppError carries an HTTP status code alongside the message so the global
// error middleware can answer with the right status.
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode builds a generic error with an explicit status code.
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// BusinessError wraps a business-rule violation.
func BusinessError(code int, message string) *AppError {
	return WithCode(code, message)
}

// InvalidRequestError wraps a parameter validation failure.
func InvalidRequestError(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidRequestErrorDefault is the default validation failure.
func InvalidRequestErrorDefault() *AppError {
	return WithCode(http.StatusBadRequest, "Parameter verification failed")
}

// NotFoundError wraps a missing-resource failure.
func NotFoundError(message string) *AppError {
	return WithCode(http.StatusNotFound, message)
}

// SystemError wraps an internal failure.
func SystemError(message string) *AppError {
	return WithCode(http.StatusInternalServerError, message)
}

// SystemErrorDefault is the default internal failure.
func SystemErrorDefault() *AppError {
	return WithCode(http.StatusInternalServerError, "System error")
}
