package server

import (
	"net/http"

	"github.com/jrsteele09/go-auth-portal/authapi"
)

// RegisterGetHandler renders the signup page
func (s *Server) RegisterGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// RegisterPostHandler handles registration form submission. On success the
// email is stashed for the verify-otp page and the user is sent there.
func (s *Server) RegisterPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		panic("Failed to parse register template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		payload := RegisterPayload{
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}

		data := s.pageData(w, r)
		data.Record["email"] = payload.Email

		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		if _, err := s.api.Signup(r.Context(), payload.Email, payload.Password); err != nil {
			s.log.Info().Err(err).Str("email", payload.Email).Msg("signup rejected")
			data.Error = apiErrorMessage(err, "Unable to sign up, please try again")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.stashFlowValue(w, r, flowPendingEmailKey, payload.Email)
		http.Redirect(w, r, RouteVerifyOTP, http.StatusSeeOther)
	}
}

// VerifyOTPGetHandler renders the OTP page with the pending email fixed
func (s *Server) VerifyOTPGetHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("verify_otp.html")
	if err != nil {
		panic("Failed to parse verify otp template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(w, r)
		data.Email = s.flowValue(r, flowPendingEmailKey)
		if data.Email == "" {
			data.Error = "No registration in progress, please sign up again"
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// VerifyOTPPostHandler submits the OTP for the pending registration
func (s *Server) VerifyOTPPostHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("verify_otp.html")
	if err != nil {
		panic("Failed to parse verify otp template: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		data := s.pageData(w, r)
		data.Email = s.flowValue(r, flowPendingEmailKey)
		if data.Email == "" {
			data.Error = "No registration in progress, please sign up again"
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		payload := VerifyOTPPayload{OTP: r.FormValue("otp")}
		if err := payload.Validate(); err != nil {
			data.Validation = FormatValidationErrorToMap(err)
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		if _, err := s.api.VerifyOTP(r.Context(), data.Email, payload.OTP); err != nil {
			s.log.Info().Err(err).Str("email", data.Email).Msg("otp rejected")
			data.Validation["otp"] = apiErrorMessage(err, "OTP verification failed")
			w.Header().Set("Content-Type", contentTypeHTML)
			_ = tmpl.Execute(w, data)
			return
		}

		s.clearFlowValue(w, r, flowPendingEmailKey)
		s.addNotice(w, r, "Account verified, you can sign in now")
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

func apiErrorMessage(err error, fallback string) string {
	if apiErr, ok := err.(*authapi.Error); ok {
		return apiErr.Message
	}
	return fallback
}
