package session_test

import (
	"net/http"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/go-auth-portal/internal/errors"
	"github.com/jrsteele09/go-auth-portal/session"
)

const (
	testSessionID = "session-1"
	testEmail     = "john.doe@example.com"
)

func signedToken(t *testing.T, email string) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{"sub": email})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func liveSession(t *testing.T) session.Session {
	t.Helper()
	now := time.Now()
	return session.Session{
		Email:     testEmail,
		Token:     signedToken(t, testEmail),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestInMemoryRepo(t *testing.T) {
	t.Run("upsert then get", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		want := liveSession(t)

		require.NoError(t, repo.Upsert(testSessionID, want))

		got, err := repo.Get(testSessionID)
		require.NoError(t, err)
		require.Equal(t, want.Email, got.Email)
		require.Equal(t, want.Token, got.Token)
	})

	t.Run("missing session", func(t *testing.T) {
		repo := session.NewInMemoryRepo()

		_, err := repo.Get("nope")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		stale := liveSession(t)
		stale.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, repo.Upsert(testSessionID, stale))

		_, err := repo.Get(testSessionID)
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)

		// second read sees it gone entirely
		_, err = repo.Get(testSessionID)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.NoError(t, repo.Upsert(testSessionID, liveSession(t)))
		require.NoError(t, repo.Delete(testSessionID))
		require.NoError(t, repo.Delete(testSessionID))

		_, err := repo.Get(testSessionID)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.Error(t, repo.Upsert("", liveSession(t)))
		_, err := repo.Get("")
		require.Error(t, err)
	})
}

func TestBearerTransport(t *testing.T) {
	t.Run("attach sets authorization header", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		sess := liveSession(t)
		tr := session.NewBearerTransport(sess, testSessionID, repo)

		req, err := http.NewRequest(http.MethodGet, "http://example.com/users/auth/me", nil)
		require.NoError(t, err)
		require.NoError(t, tr.Attach(req))
		require.Equal(t, "Bearer "+sess.Token, req.Header.Get("Authorization"))
	})

	t.Run("attach with no token fails loudly", func(t *testing.T) {
		tr := session.NewBearerTransport(session.Session{}, testSessionID, session.NewInMemoryRepo())

		req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
		require.NoError(t, err)
		require.ErrorIs(t, tr.Attach(req), apperrors.ErrNoTransport)
	})

	t.Run("identity decoded from token claims", func(t *testing.T) {
		tr := session.NewBearerTransport(liveSession(t), testSessionID, session.NewInMemoryRepo())

		id, err := tr.Identity()
		require.NoError(t, err)
		require.Equal(t, testEmail, id.Email)
	})

	t.Run("invalidate clears the store record", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.NoError(t, repo.Upsert(testSessionID, liveSession(t)))

		tr := session.NewBearerTransport(liveSession(t), testSessionID, repo)
		require.NoError(t, tr.Invalidate())

		_, err := repo.Get(testSessionID)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})
}

func TestGuard_Check(t *testing.T) {
	newGuard := func(t *testing.T) (*session.Guard, session.Repo) {
		t.Helper()
		repo := session.NewInMemoryRepo()
		return session.NewGuard(repo, zerolog.Nop()), repo
	}

	t.Run("live session is authorized", func(t *testing.T) {
		guard, repo := newGuard(t)
		require.NoError(t, repo.Upsert(testSessionID, liveSession(t)))

		state, transport := guard.Check(testSessionID)
		require.Equal(t, session.StateAuthorized, state)
		require.NotNil(t, transport)
	})

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		guard, _ := newGuard(t)

		state, transport := guard.Check("")
		require.Equal(t, session.StateUnauthorized, state)
		require.Nil(t, transport)
	})

	t.Run("unknown session is unauthorized", func(t *testing.T) {
		guard, _ := newGuard(t)

		state, transport := guard.Check("stranger")
		require.Equal(t, session.StateUnauthorized, state)
		require.Nil(t, transport)
	})

	t.Run("expired session is unauthorized, not an error", func(t *testing.T) {
		guard, repo := newGuard(t)
		stale := liveSession(t)
		stale.ExpiresAt = time.Now().Add(-time.Minute)
		require.NoError(t, repo.Upsert(testSessionID, stale))

		state, _ := guard.Check(testSessionID)
		require.Equal(t, session.StateUnauthorized, state)
	})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unknown", session.StateUnknown.String())
	require.Equal(t, "checking", session.StateChecking.String())
	require.Equal(t, "authorized", session.StateAuthorized.String())
	require.Equal(t, "unauthorized", session.StateUnauthorized.String())
}
