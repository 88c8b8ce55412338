package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-portal/token"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestEmailFromToken(t *testing.T) {
	t.Run("email in sub claim", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"sub": "john.doe@example.com",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		email, err := token.EmailFromToken(raw)
		require.NoError(t, err)
		require.Equal(t, "john.doe@example.com", email)
	})

	t.Run("falls back to email claim", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"email": "jane@example.com",
		})

		email, err := token.EmailFromToken(raw)
		require.NoError(t, err)
		require.Equal(t, "jane@example.com", email)
	})

	t.Run("sub wins over email", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"sub":   "sub@example.com",
			"email": "email@example.com",
		})

		email, err := token.EmailFromToken(raw)
		require.NoError(t, err)
		require.Equal(t, "sub@example.com", email)
	})

	t.Run("no identity claim", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"aud": "portal"})

		_, err := token.EmailFromToken(raw)
		require.ErrorIs(t, err, token.ErrNoIdentityClaim)
	})

	t.Run("not a JWT", func(t *testing.T) {
		_, err := token.EmailFromToken("opaque-token-value")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := token.EmailFromToken("  ")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})
}
