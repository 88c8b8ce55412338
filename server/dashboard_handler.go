package server

import (
	"net/http"

	"github.com/jrsteele09/go-auth-portal/authapi"
)

// DashboardData is the template model for the dashboard
type DashboardData struct {
	AppName string
	Email   string
	Notice  string
}

// DashboardHandler renders the signed-in landing page (protected). The email
// comes from the authoritative /me probe; a 401/403 here is how the portal
// discovers an expired token.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		transport := transportFromContext(r)

		data := DashboardData{
			AppName: s.config.GetAppName(),
			Notice:  s.popNotice(w, r),
		}

		identity, err := s.api.Me(r.Context(), transport)
		switch {
		case err == nil:
			data.Email = identity.Email
		case authapi.IsUnauthorized(err):
			if err := transport.Invalidate(); err != nil {
				s.log.Error().Err(err).Msg("invalidating session")
			}
			s.clearSessionCookie(w, r)
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		default:
			// service unreachable: fall back to the identity in the token
			// claims rather than kicking the user out
			s.log.Warn().Err(err).Msg("me probe failed, using local identity")
			local, idErr := transport.Identity()
			if idErr != nil {
				s.log.Debug().Err(idErr).Msg("local identity unreadable")
			}
			data.Email = local.Email
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}
