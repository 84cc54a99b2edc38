package jwt_test

import (
	"testing"
	"time"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/tokentest"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/stretchr/testify/require"
)

func TestInspector_Decode(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := tokentest.Mint(t, map[string]any{
		"sub":                         "user-1",
		"email":                       "jane@example.com",
		"name":                        "Jane",
		"exp":                         exp.Unix(),
		"refreshIdTokenBeforeSeconds": 300,
		"serviceSettingsUrl":          "https://settings.test/v1",
		"cognito:groups":              []any{"admins", 7, "devs"},
	})

	claims, err := jwt.NewInspector().Decode(raw)
	require.NoError(t, err)
	require.True(t, exp.Equal(claims.ExpiresAt))
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "Jane", claims.Name)
	require.Equal(t, "https://settings.test/v1", claims.ServiceSettingsURL)
	require.Equal(t, []string{"admins", "devs"}, claims.Groups)
	require.NotNil(t, claims.RefreshBefore)
	require.Equal(t, 5*time.Minute, *claims.RefreshBefore)
	require.Equal(t, "user-1", claims.Raw["sub"])
}

func TestInspector_OptionalClaimsAbsent(t *testing.T) {
	raw := tokentest.Mint(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})

	claims, err := jwt.NewInspector().Decode(raw)
	require.NoError(t, err)
	require.Nil(t, claims.RefreshBefore)
	require.Empty(t, claims.ServiceSettingsURL)
	require.Empty(t, claims.Groups)
}

func TestInspector_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"bad payload":  "eyJhbGciOiJIUzI1NiJ9.!!!.sig",
		"no exp claim": tokentest.Mint(t, map[string]any{"sub": "user-1"}),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := jwt.NewInspector().Decode(raw)
			require.ErrorIs(t, err, autherrors.ErrMalformedToken)
		})
	}
}
