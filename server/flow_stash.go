package server

import "net/http"

// Keys inside the flow cookie
const (
	flowPendingEmailKey = "pending_email" // Register -> VerifyOtp
	flowResetEmailKey   = "reset_email"   // ForgotPassword -> ResetPassword
)

// The flow stash carries the little bits of state that must survive a
// redirect between two pages of the same flow: the email a registration is
// pending for, the email a password reset was started for, and one-shot
// notices. It is a signed cookie, so the user can drop it at any time;
// every reader treats absence as "restart the flow".

func (s *Server) stashFlowValue(w http.ResponseWriter, r *http.Request, key, value string) {
	flow, _ := s.flow.Get(r, flowSessionName)
	flow.Values[key] = value
	if err := flow.Save(r, w); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("saving flow cookie")
	}
}

func (s *Server) flowValue(r *http.Request, key string) string {
	flow, err := s.flow.Get(r, flowSessionName)
	if err != nil {
		return ""
	}
	value, _ := flow.Values[key].(string)
	return value
}

func (s *Server) clearFlowValue(w http.ResponseWriter, r *http.Request, key string) {
	flow, err := s.flow.Get(r, flowSessionName)
	if err != nil {
		return
	}
	delete(flow.Values, key)
	if err := flow.Save(r, w); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("clearing flow cookie")
	}
}

// addNotice queues a one-shot success message for the next page render
func (s *Server) addNotice(w http.ResponseWriter, r *http.Request, msg string) {
	flow, _ := s.flow.Get(r, flowSessionName)
	flow.AddFlash(msg)
	if err := flow.Save(r, w); err != nil {
		s.log.Error().Err(err).Msg("saving flash notice")
	}
}

// popNotice consumes the queued notice, if any
func (s *Server) popNotice(w http.ResponseWriter, r *http.Request) string {
	flow, err := s.flow.Get(r, flowSessionName)
	if err != nil {
		return ""
	}
	flashes := flow.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	if err := flow.Save(r, w); err != nil {
		s.log.Error().Err(err).Msg("consuming flash notice")
	}
	notice, _ := flashes[0].(string)
	return notice
}
