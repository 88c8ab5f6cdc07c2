package core

import (
	"errors"
	"net/http"
)

// ErrEmptyCode is returned when a review request carries no code.
var ErrEmptyCode = errors.New("code input is required")

// ErrorKind classifies a ServiceError for logging and metrics.
type ErrorKind string

const (
	KindInput     ErrorKind = "input"
	KindFatal     ErrorKind = "fatal"
	KindExhausted ErrorKind = "exhausted"
	KindCanceled  ErrorKind = "canceled"
)

// ServiceError is the only failure shape that leaves the review core.
// StatusCode is what the HTTP layer answers with; Err keeps the original
// cause for logs and errors.Is/As.
type ServiceError struct {
	StatusCode int
	Message    string
	Kind       ErrorKind
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// HTTPStatus exposes the resolved status code.
func (e *ServiceError) HTTPStatus() int {
	return e.StatusCode
}

// NewInputError builds the 400 error used for invalid requests.
func NewInputError(err error) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Kind:       KindInput,
		Err:        err,
	}
}

// AsServiceError unwraps err into a *ServiceError. Errors of any other shape
// are reported as an internal failure with a generic message.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		Kind:       KindFatal,
		Err:        err,
	}
}
