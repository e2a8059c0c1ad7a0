package jobs

import (
	"context"

	"go.uber.org/zap"
)

// Stale reconciles the stored Nominator set against the chain's current
// nominator map: addresses no longer present on-chain are removed, and the
// removal is reported via notification (§4.2's "emits notifications only").
func (c *Context) Stale(ctx context.Context) error {
	onChain, err := c.Chain.GetAllNominatorsMap(ctx)
	if err != nil {
		c.Logger.Warn("stale: chain unreachable", zap.Error(err))
		return nil
	}

	keep := make([]string, 0, len(onChain))
	for address := range onChain {
		keep = append(keep, address)
	}

	removed, err := c.Store.RemoveStaleNominators(ctx, keep)
	if err != nil {
		return err
	}
	for _, address := range removed {
		c.notify(ctx, "removed stale nominator "+address)
	}
	return nil
}
