package identity

import "context"

const refreshKey = "access-token"

// AccessToken returns a usable session token, refreshing it first when it is due or
// expired. Concurrent callers share a single refresh. The shared refresh is detached from
// any one caller's cancellation; each caller still stops waiting when its own ctx ends.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		tenant, err := c.currentTenant(shared)
		if err != nil {
			return "", err
		}
		return c.refresher.RefreshWith(shared, tenant, func(ctx context.Context) (string, error) {
			return c.clientID(ctx, tenant)
		})
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
