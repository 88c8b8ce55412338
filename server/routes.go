package server

import "net/http"

func (s *Server) initRoutes() {
	// LOGIN
	s.registerRoute(http.MethodGet, RouteLogin, s.chainHTML(s.LoginGetHandler()))
	s.registerRoute(http.MethodPost, RouteLogin, s.chainHTML(s.LoginPostHandler()))
	s.registerRoute(http.MethodGet, RouteLogout, s.chainHTML(s.LogoutHandler()))
	s.registerRoute(http.MethodPost, RouteLogout, s.chainHTML(s.LogoutHandler()))

	// REGISTRATION
	s.registerRoute(http.MethodGet, RouteRegister, s.chainHTML(s.RegisterGetHandler()))
	s.registerRoute(http.MethodPost, RouteRegister, s.chainHTML(s.RegisterPostHandler()))
	s.registerRoute(http.MethodGet, RouteVerifyOTP, s.chainHTML(s.VerifyOTPGetHandler()))
	s.registerRoute(http.MethodPost, RouteVerifyOTP, s.chainHTML(s.VerifyOTPPostHandler()))

	// PASSWORD RESET
	s.registerRoute(http.MethodGet, RouteForgotPassword, s.chainHTML(s.ForgotPasswordGetHandler()))
	s.registerRoute(http.MethodPost, RouteForgotPassword, s.chainHTML(s.ForgotPasswordPostHandler()))
	s.registerRoute(http.MethodGet, RouteResetPassword, s.chainHTML(s.ResetPasswordGetHandler()))
	s.registerRoute(http.MethodPost, RouteResetPassword, s.chainHTML(s.ResetPasswordPostHandler()))
	s.registerRoute(http.MethodGet, RouteResetCancel, s.chainHTML(s.ResetCancelHandler()))

	// PROTECTED PAGES (session guard ahead of rendering)
	s.registerRoute(http.MethodGet, RouteDashboard, s.chainHTML(s.DashboardHandler(), s.RequireSession()))
	s.registerRoute(http.MethodGet, RouteChangePassword, s.chainHTML(s.ChangePasswordGetHandler(), s.RequireSession()))
	s.registerRoute(http.MethodPost, RouteChangePassword, s.chainHTML(s.ChangePasswordPostHandler(), s.RequireSession()))

	// Static assets
	s.routes = append(s.routes, "GET /static/{file}")
	s.router.PathPrefix("/static/").Handler(StaticFileHandler()).Methods(http.MethodGet)

	// Everything else, including "/", lands on the login page
	s.router.NotFoundHandler = s.chainHTML(s.redirectToLoginHandler())
}

func (s *Server) redirectToLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// chainHTML applies the standard HTML middleware stack plus any
// route-specific middleware (the session guard, for protected pages)
func (s *Server) chainHTML(handler http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chained := []func(http.HandlerFunc) http.HandlerFunc{
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.FrameSecurityMiddleware,
	}
	chained = append(chained, mw...)
	return ChainMiddleware(handler, chained...)
}
