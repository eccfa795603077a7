package species

import (
	"fmt"
	"net/http"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrUnexpectedResponse
	ErrInvalidResponse
	ErrProtocol
	ErrStream
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// ResponseError is returned when the backend answers with a non-2xx status.
// Only the status code is kept; any error body is discarded.
type ResponseError struct {
	StatusCode int
	Status     string
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrUnexpectedResponse:
		return "unexpected response"
	case ErrInvalidResponse:
		return "invalid response"
	case ErrProtocol:
		return "stream protocol violation"
	case ErrStream:
		return "stream error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// NewResponseError returns an error for the given HTTP status code
func NewResponseError(code int) *ResponseError {
	return &ResponseError{
		StatusCode: code,
		Status:     http.StatusText(code),
	}
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

func (e *ResponseError) Unwrap() error {
	return ErrUnexpectedResponse
}
