package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-auth-portal/session"
	"github.com/jrsteele09/go-auth-portal/token"
)

// UIPageData is the template model shared by the auth pages
type UIPageData struct {
	AppName    string
	Email      string            // read-only prefill (verify-otp, reset pages)
	Error      string            // form-level error
	Notice     string            // one-shot success message
	Validation map[string]string // field -> message
	Record     map[string]string // submitted values, to keep fields editable on failure
}

func (s *Server) pageData(w http.ResponseWriter, r *http.Request) UIPageData {
	return UIPageData{
		AppName:    s.config.GetAppName(),
		Notice:     s.popNotice(w, r),
		Validation: map[string]string{},
		Record:     map[string]string{},
	}
}

// LoginGetHandler displays the login page (GET /login)
func (s *Server) LoginGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// LoginPostHandler processes the login form submission
func (s *Server) LoginPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		payload := LoginPayload{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}

		data := s.pageData(w, r)
		data.Record["email"] = payload.Email

		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		bearer, err := s.api.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			s.log.Info().Err(err).Str("email", payload.Email).Msg("login rejected")
			data.Error = apiErrorMessage(err, "Unable to sign in, please try again")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		email, err := token.EmailFromToken(bearer)
		if err != nil {
			// opaque token without readable claims: fall back to the email
			// the user signed in with
			s.log.Debug().Err(err).Msg("token claims unreadable, using submitted email")
			email = payload.Email
		}

		sessionID := uuid.NewString()
		if err := s.sessions.Upsert(sessionID, s.newSession(email, bearer)); err != nil {
			s.log.Error().Err(err).Msg("storing login session")
			data.Error = "Unable to start a session, please try again"
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.setSessionCookie(w, r, sessionID)
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// LogoutHandler ends the session. The local session is cleared even when the
// upstream logout call fails.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := s.sessionIDFromRequest(r)

		if sessionID != "" {
			if sess, err := s.sessions.Get(sessionID); err == nil {
				transport := session.NewBearerTransport(sess, sessionID, s.sessions)
				if _, err := s.api.Logout(r.Context(), transport); err != nil {
					s.log.Warn().Err(err).Msg("upstream logout failed, clearing local session anyway")
				}
			}
			if err := s.sessions.Delete(sessionID); err != nil {
				s.log.Error().Err(err).Msg("deleting login session")
			}
		}

		s.clearSessionCookie(w, r)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
