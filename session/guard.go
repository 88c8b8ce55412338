package session

import (
	"github.com/rs/zerolog"
)

// State is the guard's view of a navigation into a protected region
type State int

const (
	// StateUnknown is the initial state before any check has run
	StateUnknown State = iota
	// StateChecking means the session record is being resolved
	StateChecking
	// StateAuthorized admits the navigation
	StateAuthorized
	// StateUnauthorized redirects to the login page. There is no separate
	// error state: any failure to resolve the session lands here.
	StateUnauthorized
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	}
	return "invalid"
}

// Guard decides whether a session ID admits a protected navigation
type Guard struct {
	sessions Repo
	log      zerolog.Logger
}

// NewGuard creates a Guard over the given session store
func NewGuard(sessions Repo, logger zerolog.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		log:      logger.With().Str("component", "guard").Logger(),
	}
}

// Check resolves sessionID to Authorized or Unauthorized. The returned
// Transport is non-nil only when the state is Authorized.
func (g *Guard) Check(sessionID string) (State, Transport) {
	state := StateUnknown

	if sessionID == "" {
		g.log.Debug().Str("state", state.String()).Msg("no session cookie")
		return StateUnauthorized, nil
	}

	state = StateChecking

	sess, err := g.sessions.Get(sessionID)
	if err != nil {
		g.log.Debug().Err(err).Str("state", state.String()).Msg("session rejected")
		return StateUnauthorized, nil
	}

	return StateAuthorized, NewBearerTransport(sess, sessionID, g.sessions)
}
