package authapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the normalized failure of a credential-service call. Message is
// the raw response body when the service sent one, otherwise the calling
// operation's fallback text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth api: %s (status %d)", e.Message, e.StatusCode)
}

// Unauthorized reports whether the failure means the session is no longer
// valid and the caller should drop it.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err carries a 401/403 from the service
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}
