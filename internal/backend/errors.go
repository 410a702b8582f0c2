package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport is wrapped by every error caused by the network rather than the backend.
var ErrTransport = errors.New("backend unreachable")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsStatus reports whether err is a backend HTTP error of any status.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
