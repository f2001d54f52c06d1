package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: %s", e.Path, e.Status)
	}
	return fmt.Sprintf("GET %s: %s: %s", e.Path, e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
// The activity endpoint answers 404 for days without any log.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
