// Package tokentest mints unverified session tokens for tests.
package tokentest

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Mint returns a signed JWT carrying claims. The key is irrelevant because the client never
// verifies signatures.
func Mint(t testing.TB, claims map[string]any) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims(claims)).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

// ExpiringAt returns a token that expires at exp, merged with extra claims
func ExpiringAt(t testing.TB, exp time.Time, extra map[string]any) string {
	t.Helper()
	claims := map[string]any{
		"sub": "user-1",
		"exp": exp.Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return Mint(t, claims)
}
