package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-portal/session"
)

// newSession builds a login-session record with the configured TTL
func (s *Server) newSession(email, bearer string) session.Session {
	now := time.Now()
	return session.Session{
		Email:     email,
		Token:     bearer,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
}

func (s *Server) sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(portalSessionID)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie hands the browser the opaque session ID. No MaxAge: the
// cookie lives for the browser session; the server-side record carries the
// real TTL.
func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     portalSessionID,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     portalSessionID,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
