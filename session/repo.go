package session

// Repo stores login sessions keyed by the opaque session ID carried in the
// browser cookie. Implementations must be safe for concurrent use.
type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
