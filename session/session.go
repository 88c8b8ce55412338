// Package session owns the portal's belief that a user is signed in: the
// server-side login-session record, the repo it lives in, the transport that
// attaches the credential to upstream requests, and the guard that gates
// protected routes.
package session

import "time"

// Session is one signed-in browser's server-side record. The browser holds
// only the opaque session ID in an HTTP-only cookie; the bearer token never
// leaves the portal.
type Session struct {
	Email string
	Token string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the record has outlived its TTL
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// Identity is who the current session belongs to
type Identity struct {
	Email string
}
