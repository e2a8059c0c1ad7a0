package jobs

import (
	"context"

	"go.uber.org/zap"
)

const (
	inclusionWindow     = 84
	spanInclusionWindow = 28
)

// Inclusion recomputes each candidate's inclusion/spanInclusion fractions
// from the EraPoints rows EraPoints populated (§4.2, §4.4). Must run after
// EraPoints; per §4.2's ordering note it tolerates a stale window and
// converges over successive ticks if EraPoints hasn't caught up yet.
func (c *Context) Inclusion(ctx context.Context) error {
	active, err := c.Chain.GetActiveEraIndex(ctx)
	if err != nil {
		c.Logger.Warn("inclusion: chain unreachable", zap.Error(err))
		return nil
	}

	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		inclusion := c.inclusionFraction(ctx, candidate.Stash, active, inclusionWindow)
		span := c.inclusionFraction(ctx, candidate.Stash, active, spanInclusionWindow)
		if err := c.Store.SetInclusion(ctx, candidate.Stash, inclusion, span); err != nil {
			c.Logger.Warn("inclusion: store write failed", zap.String("stash", candidate.Stash), zap.Error(err))
		}
	}
	return nil
}

// inclusionFraction is the share of the last window eras in which the
// candidate earned any era points at all.
func (c *Context) inclusionFraction(ctx context.Context, stash string, active uint32, window int64) float64 {
	start := int64(active) - window
	if start < 0 {
		start = 0
	}
	total := int64(active) - start
	if total <= 0 {
		return 0
	}

	var included int64
	for era := uint32(start); era < active; era++ {
		ep, err := c.Store.GetEraPoints(ctx, era, stash)
		if err == nil && ep.EraPoints > 0 {
			included++
		}
	}
	return float64(included) / float64(total)
}
