package session

import (
	"net/http"

	apperrors "github.com/jrsteele09/go-auth-portal/internal/errors"
	"github.com/jrsteele09/go-auth-portal/token"
)

// Transport carries the active session's credential. Pages and the guard are
// written against this interface, never against the storage mechanism, so
// the credential model lives in exactly one place.
type Transport interface {
	// Attach adds the credential to an outgoing request
	Attach(r *http.Request) error
	// Identity returns who the session belongs to
	Identity() (Identity, error)
	// Invalidate discards the session everywhere the portal holds it
	Invalidate() error
}

var _ Transport = (*BearerTransport)(nil)

// BearerTransport is the bearer-token strategy: the token is held in the
// login-session record and sent as an Authorization header on every
// authenticated upstream call.
type BearerTransport struct {
	token     string
	sessionID string
	store     Repo
}

// NewBearerTransport builds a transport for one resolved session
func NewBearerTransport(sess Session, sessionID string, store Repo) *BearerTransport {
	return &BearerTransport{
		token:     sess.Token,
		sessionID: sessionID,
		store:     store,
	}
}

func (b *BearerTransport) Attach(r *http.Request) error {
	if b.token == "" {
		return apperrors.ErrNoTransport
	}
	r.Header.Set("Authorization", "Bearer "+b.token)
	return nil
}

func (b *BearerTransport) Identity() (Identity, error) {
	email, err := token.EmailFromToken(b.token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Email: email}, nil
}

func (b *BearerTransport) Invalidate() error {
	if b.store == nil || b.sessionID == "" {
		return nil
	}
	return b.store.Delete(b.sessionID)
}
