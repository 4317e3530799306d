package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports bad caller input. It is raised before any
// upstream call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a non-2xx response from an upstream provider.
type UpstreamError struct {
	Provider string
	Status   int
	Retried  bool
	Err      error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
	if e.Retried {
		msg += " after retry"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// TransportError reports a failure to reach an upstream provider at all.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// HTTPStatus maps an error to the status code the HTTP boundary answers with.
func HTTPStatus(err error) int {
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
