package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Execution submits a proxy-announced nominate transaction for each
// DelayedTx whose delay window has elapsed (§4.5). Runs strictly
// sequentially — transaction submission from a shared controller set is not
// safe to fan out, unlike the read-only jobs above.
func (c *Context) Execution(ctx context.Context) error {
	_, currentBlock, err := c.currentBlock(ctx)
	if err != nil {
		c.Logger.Warn("execution: chain unreachable", zap.Error(err))
		return nil
	}

	pending, err := c.Store.ListDelayedTx(ctx)
	if err != nil {
		return err
	}

	for _, tx := range pending {
		if tx.Number+c.Cfg.Proxy.TimeDelayBlocks > currentBlock {
			continue
		}

		nominator := c.nominatorByController(tx.Controller)
		if nominator == nil {
			c.Logger.Warn("execution: no nominator owns controller", zap.String("controller", tx.Controller))
			continue
		}

		blockHash, err := nominator.SendStakingTx(ctx, tx.Targets)
		if err != nil {
			c.Logger.Warn("execution: submit failed, retrying next tick",
				zap.Uint64("number", tx.Number), zap.String("controller", tx.Controller), zap.Error(err))
			continue
		}

		if err := c.Store.DeleteDelayedTx(ctx, tx.Number, tx.Controller); err != nil {
			c.Logger.Warn("execution: delayed tx delete failed", zap.Uint64("number", tx.Number), zap.Error(err))
		}
		c.notify(ctx, fmt.Sprintf("nomination executed for %s in block %s", nominator.Stash(), blockHash))
	}
	return nil
}

// currentBlock is a small wrapper so Execution/Cancel share one chain call
// shape without Execution needing the block hash it never uses.
func (c *Context) currentBlock(ctx context.Context) (string, uint64, error) {
	height, hash, err := c.Chain.GetLatestBlock(ctx)
	return hash, height, err
}

func (c *Context) nominatorByController(controller string) Nominator {
	for _, n := range c.Nominators {
		if n.Controller() == controller {
			return n
		}
	}
	return nil
}
