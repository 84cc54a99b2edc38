package identity

import (
	"context"

	"github.com/jrsteele09/go-auth-client/sessions"
)

// Logout revokes the refresh token and ends the provider session on a best effort basis,
// then clears every token from the store. Only a store failure makes Logout fail.
func (c *Client) Logout(ctx context.Context) error {
	record, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	if record.HasTokens() {
		c.endRemoteSession(ctx, record)
	}

	if _, err := c.store.Update(ctx, func(r *sessions.Record) error {
		r.ClearTokens()
		return nil
	}); err != nil {
		return err
	}
	c.logger.Info().Str("client", c.name).Msg("logged out")
	return nil
}

func (c *Client) endRemoteSession(ctx context.Context, record *sessions.Record) {
	tenant, err := c.tenantFor(record)
	if err != nil {
		c.logger.Warn().Err(err).Msg("logout: could not resolve tenant, skipping revoke")
		return
	}
	clientID, err := c.clientID(ctx, tenant)
	if err != nil {
		c.logger.Warn().Err(err).Msg("logout: could not resolve client id, skipping revoke")
		return
	}

	if err := c.revoker.Revoke(ctx, tenant, clientID, record.RefreshToken); err != nil {
		c.logger.Warn().Err(err).Str("tenant", tenant.Name).Msg("logout: refresh token revoke failed")
	}
	if err := c.revoker.Logout(ctx, tenant, clientID); err != nil {
		c.logger.Warn().Err(err).Str("tenant", tenant.Name).Msg("logout: provider logout failed")
	}
}
