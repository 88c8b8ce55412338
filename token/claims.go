// Package token reads identity hints out of bearer tokens issued by the
// remote credential service. The portal never verifies signatures; the
// service that issued the token is the only party that can, and every
// authenticated request is re-validated upstream anyway.
package token

import (
	"errors"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when the raw string is not a JWT
	ErrMalformedToken = errors.New("malformed token")
	// ErrNoIdentityClaim is returned when the claims carry no usable identity
	ErrNoIdentityClaim = errors.New("token carries no identity claim")
)

// EmailFromToken extracts the user's email from an unverified JWT.
// The credential service puts the email in "sub"; older tokens used an
// explicit "email" claim, which is kept as a fallback.
func EmailFromToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMalformedToken
	}

	unverified, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return "", ErrMalformedToken
	}

	claims, ok := unverified.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", ErrMalformedToken
	}

	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email, nil
	}

	return "", ErrNoIdentityClaim
}
