package jobs

import "context"

// ClearOffline zeroes every candidate's accumulated offline time (§4.2,
// §8's "after ClearOffline, every candidate's offlineAccumulated = 0").
func (c *Context) ClearOffline(ctx context.Context) error {
	return c.Store.ClearOfflineAccumulated(ctx)
}
