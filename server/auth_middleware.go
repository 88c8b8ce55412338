package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-portal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyTransport stores the resolved session transport
	ContextKeyTransport ContextKey = "transport"
	// ContextKeySessionID stores the opaque login-session ID
	ContextKeySessionID ContextKey = "session_id"
)

// RequireSession gates protected pages. The guard resolves the session
// cookie against the store; anything short of Authorized redirects to the
// login page before any protected content is written.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID := s.sessionIDFromRequest(r)

			state, transport := s.guard.Check(sessionID)
			if state != session.StateAuthorized {
				s.clearSessionCookie(w, r)
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyTransport, transport)
			ctx = context.WithValue(ctx, ContextKeySessionID, sessionID)
			next(w, r.WithContext(ctx))
		}
	}
}

// transportFromContext returns the transport RequireSession resolved, or nil
// on an unguarded route
func transportFromContext(r *http.Request) session.Transport {
	transport, _ := r.Context().Value(ContextKeyTransport).(session.Transport)
	return transport
}

func sessionIDFromContext(r *http.Request) string {
	sessionID, _ := r.Context().Value(ContextKeySessionID).(string)
	return sessionID
}
