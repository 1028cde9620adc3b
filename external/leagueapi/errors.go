package leagueapi

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

// StatusError is the uniform transport error for non-2xx responses. The
// client never parses structured error bodies; code and status text are
// all a caller gets.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("league api: %s", e.Status)
	}
	return fmt.Sprintf("league api: status %d", e.Code)
}

func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr.Code == code
	}
	return false
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
