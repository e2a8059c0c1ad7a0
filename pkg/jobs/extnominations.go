package jobs

import (
	"context"

	"go.uber.org/zap"
)

// ExtNominations reads the chain's full nominator map and tallies, per
// candidate stash, the bonded amount nominating it from accounts outside
// this program's own controlled nominators. Per the open question preserved
// from the source (DESIGN NOTES §9), the result is deliberately never
// written back to any candidate — the computation is incomplete upstream
// and this job reproduces that behavior rather than "fixing" it by wiring
// Store.SetExternalNominations, which exists on the Store interface but is
// intentionally left uncalled.
func (c *Context) ExtNominations(ctx context.Context) error {
	nominators, err := c.Chain.GetAllNominatorsMap(ctx)
	if err != nil {
		c.Logger.Warn("extNominations: chain unreachable", zap.Error(err))
		return nil
	}

	controlled := make(map[string]bool, len(c.Nominators))
	for _, n := range c.Nominators {
		controlled[n.Address()] = true
	}

	totals := make(map[string]uint64)
	for address, info := range nominators {
		if controlled[address] {
			continue
		}
		for _, target := range info.Targets {
			totals[target] += info.Bonded
		}
	}

	c.Logger.Debug("extNominations: computed external nomination totals (not persisted)", zap.Int("candidates", len(totals)))
	return nil
}
