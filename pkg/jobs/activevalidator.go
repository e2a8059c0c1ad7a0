package jobs

import (
	"context"

	"go.uber.org/zap"
)

// ActiveValidator marks which candidates are currently in the chain's
// validator set (§4.2).
func (c *Context) ActiveValidator(ctx context.Context) error {
	current, err := c.Chain.CurrentValidators(ctx)
	if err != nil {
		c.Logger.Warn("activeValidator: chain unreachable", zap.Error(err))
		return nil
	}
	activeSet := make(map[string]bool, len(current))
	for _, stash := range current {
		activeSet[stash] = true
	}

	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		if err := c.Store.SetActive(ctx, candidate.Stash, activeSet[candidate.Stash]); err != nil {
			c.Logger.Warn("activeValidator: set active failed", zap.String("stash", candidate.Stash), zap.Error(err))
		}
	}
	return nil
}
