package sessions_test

import (
	"testing"

	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/stretchr/testify/require"
)

func TestRecord_Tokens(t *testing.T) {
	r := &sessions.Record{}
	require.False(t, r.HasTokens())

	r.SetTokens("T1", "A1", "R1")
	require.Equal(t, "T1", r.Token())
	require.Equal(t, "T1", r.LegacyAccessToken)

	t.Run("refresh token kept when not rotated", func(t *testing.T) {
		r.SetTokens("T2", "", "")
		require.Equal(t, "T2", r.Token())
		require.Equal(t, "A1", r.AccessToken)
		require.Equal(t, "R1", r.RefreshToken)
	})

	t.Run("clear", func(t *testing.T) {
		r.ClearTokens()
		require.False(t, r.HasTokens())
		require.Empty(t, r.Token())
	})
}

func TestRecord_Clone(t *testing.T) {
	r := &sessions.Record{Tenants: sessions.TenantSelection{Previous: []string{"a"}}}
	c := r.Clone()
	c.Tenants.Previous[0] = "b"
	require.Equal(t, "a", r.Tenants.Previous[0])

	var nilRecord *sessions.Record
	require.NotNil(t, nilRecord.Clone())
}

func TestTenantSelection(t *testing.T) {
	var sel sessions.TenantSelection

	require.NoError(t, sel.Set("oneblink"))
	require.NoError(t, sel.Set("civicplus"))
	require.NoError(t, sel.Set("oneblink"))
	require.Equal(t, "oneblink", sel.Current)
	require.Equal(t, []string{"oneblink", "civicplus"}, sel.Previous)

	require.NoError(t, sel.Remove("oneblink"))
	require.Empty(t, sel.Current)
	require.Equal(t, []string{"civicplus"}, sel.Previous)

	require.NoError(t, sel.Remove("unknown"))
	require.Equal(t, []string{"civicplus"}, sel.Previous)

	err := sel.Set("")
	require.ErrorIs(t, err, autherrors.ErrInvalidInput)
	require.ErrorIs(t, sel.Remove(""), autherrors.ErrInvalidInput)
}
