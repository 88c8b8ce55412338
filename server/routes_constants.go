package server

// Client-visible routes
const (
	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteRegister       = "/register"
	RouteVerifyOTP      = "/verifyotp"
	RouteForgotPassword = "/forgotpassword"
	RouteResetPassword  = "/resetpassword"
	RouteResetCancel    = "/resetpassword/cancel"
	RouteChangePassword = "/changepassword"
	RouteDashboard      = "/dashboard"
)

const (
	// portalSessionID is the name of the HTTP-only cookie that carries the
	// opaque login-session ID
	portalSessionID = "portalSessionId"

	// flowSessionName is the gorilla/sessions cookie holding cross-page flow
	// state (pending registration, password-reset context, flash notices)
	flowSessionName = "authFlow"

	// flowCookieMaxAge keeps flow state around long enough to finish a
	// signup or reset, not longer
	flowCookieMaxAge = 30 * 60 // seconds

	contentTypeHTML = "text/html; charset=utf-8"
)
