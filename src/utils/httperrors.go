package utils

import (
	"fmt"
	"net/http"
)

// HTTPError carries the status a handler should answer with.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// NotFound creates a 404 Not Found error
func NotFound(format string, args ...interface{}) error {
	return NewHTTPError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// ServiceUnavailable creates a 503 Service Unavailable error
func ServiceUnavailable(format string, args ...interface{}) error {
	return NewHTTPError(http.StatusServiceUnavailable, fmt.Sprintf(format, args...))
}
