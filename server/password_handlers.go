package server

import (
	"net/http"

	"github.com/jrsteele09/go-auth-portal/authapi"
)

// ForgotPasswordGetHandler renders the forgot-password page
func (s *Server) ForgotPasswordGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// ForgotPasswordPostHandler asks the credential service to mail a reset OTP
// and stashes the email for the reset page
func (s *Server) ForgotPasswordPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("forgot_password.html")
	if err != nil {
		panic("Failed to parse forgot password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		payload := ForgotPasswordPayload{Email: r.FormValue("email")}

		data := s.pageData(w, r)
		data.Record["email"] = payload.Email

		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		if _, err := s.api.SendForgotOTP(r.Context(), payload.Email); err != nil {
			s.log.Info().Err(err).Str("email", payload.Email).Msg("forgot password rejected")
			data.Error = apiErrorMessage(err, "Failed to send OTP")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.stashFlowValue(w, r, flowResetEmailKey, payload.Email)
		http.Redirect(w, r, RouteResetPassword, http.StatusSeeOther)
	}
}

// ResetPasswordGetHandler renders the reset form. Without a stashed email
// there is nothing to reset against, so the page tells the user to restart.
func (s *Server) ResetPasswordGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		data.Email = s.flowValue(r, flowResetEmailKey)
		if data.Email == "" {
			data.Error = "No password reset in progress, please request a new OTP"
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// ResetPasswordPostHandler completes the reset with the mailed OTP
func (s *Server) ResetPasswordPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("reset_password.html")
	if err != nil {
		panic("Failed to parse reset password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		data := s.pageData(w, r)
		data.Email = s.flowValue(r, flowResetEmailKey)
		if data.Email == "" {
			data.Error = "No password reset in progress, please request a new OTP"
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		payload := ResetPasswordPayload{
			OTP:             r.FormValue("otp"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		if _, err := s.api.ResetPassword(r.Context(), data.Email, payload.OTP, payload.Password); err != nil {
			s.log.Info().Err(err).Str("email", data.Email).Msg("password reset rejected")
			data.Validation["otp"] = apiErrorMessage(err, "Reset password failed")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.clearFlowValue(w, r, flowResetEmailKey)
		s.addNotice(w, r, "Password reset, you can sign in now")
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// ResetCancelHandler abandons a reset in progress and drops its context
func (s *Server) ResetCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearFlowValue(w, r, flowResetEmailKey)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// ChangePasswordGetHandler renders the change-password page (protected)
func (s *Server) ChangePasswordGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("change_password.html")
	if err != nil {
		panic("Failed to parse change password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// ChangePasswordPostHandler processes the change-password form (protected)
func (s *Server) ChangePasswordPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("change_password.html")
	if err != nil {
		panic("Failed to parse change password template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		payload := ChangePasswordPayload{
			OldPassword:     r.FormValue("old_password"),
			NewPassword:     r.FormValue("new_password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		data := s.pageData(w, r)

		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		transport := transportFromContext(r)

		if _, err := s.api.ChangePassword(r.Context(), transport, payload.OldPassword, payload.NewPassword); err != nil {
			if authapi.IsUnauthorized(err) {
				// session no longer valid upstream; drop it and start over
				if err := transport.Invalidate(); err != nil {
					s.log.Error().Err(err).Msg("invalidating session")
				}
				s.clearSessionCookie(w, r)
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}

			s.log.Info().Err(err).Msg("change password rejected")
			// the service rejects a wrong current password, so pin the
			// message to that field
			data.Validation["old_password"] = apiErrorMessage(err, "Change password failed")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.addNotice(w, r, "Password changed")
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}
