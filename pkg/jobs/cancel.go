package jobs

import (
	"context"

	"go.uber.org/zap"
)

// Cancel reads proxy announcements per controlled nominator and cancels any
// older than 2*timeDelayBlocks (§4.7).
func (c *Context) Cancel(ctx context.Context) error {
	_, currentBlock, err := c.currentBlock(ctx)
	if err != nil {
		c.Logger.Warn("cancel: chain unreachable", zap.Error(err))
		return nil
	}

	staleBefore := 2 * c.Cfg.Proxy.TimeDelayBlocks

	for _, nominator := range c.Nominators {
		announcements, err := c.Chain.GetProxyAnnouncements(ctx, nominator.Address())
		if err != nil {
			c.Logger.Warn("cancel: chain call failed", zap.String("address", nominator.Address()), zap.Error(err))
			continue
		}

		for _, ann := range announcements {
			if currentBlock < staleBefore || ann.Height > currentBlock-staleBefore {
				continue
			}
			if err := nominator.CancelTx(ctx, ann.Height); err != nil {
				c.Logger.Warn("cancel: cancel submission failed",
					zap.String("address", nominator.Address()), zap.Uint64("height", ann.Height), zap.Error(err))
				continue
			}
			c.notify(ctx, "cancelled stale proxy announcement for "+nominator.Stash())
		}
	}
	return nil
}
