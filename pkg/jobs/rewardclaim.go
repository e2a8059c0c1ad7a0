package jobs

import (
	"context"

	"go.uber.org/zap"
)

// RewardClaim collects every {era, stash} pair old enough to claim across
// all candidates' unclaimedEras and submits one batched claim, guarded by
// the claimer account's free balance (§4.6).
func (c *Context) RewardClaim(ctx context.Context) error {
	if c.Claimer == nil {
		return nil
	}

	currentEra, err := c.Chain.GetCurrentEra(ctx)
	if err != nil {
		c.Logger.Warn("rewardClaim: chain unreachable", zap.Error(err))
		return nil
	}

	balance, err := c.claimerBalance(ctx)
	if err != nil {
		c.Logger.Warn("rewardClaim: balance check failed", zap.Error(err))
		return nil
	}
	if balance < c.Cfg.Constraints.MinClaimerBalance {
		c.Logger.Warn("rewardClaim: claimer balance below minimum, skipping", zap.Uint64("balance", balance))
		c.notify(ctx, "reward claimer balance below minimum, rewards are not being claimed")
		return nil
	}

	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	threshold := c.Cfg.Constraints.RewardClaimThreshold
	var pairs []EraStashPair
	for _, candidate := range candidates {
		for _, era := range candidate.UnclaimedEras {
			if era >= currentEra || currentEra-era <= threshold {
				continue
			}
			pairs = append(pairs, EraStashPair{Era: era, Stash: candidate.Stash})
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	if err := c.Claimer.Claim(ctx, pairs); err != nil {
		c.Logger.Warn("rewardClaim: claim submission failed", zap.Int("pairs", len(pairs)), zap.Error(err))
		return nil
	}
	return nil
}

func (c *Context) claimerBalance(ctx context.Context) (uint64, error) {
	if len(c.Nominators) == 0 {
		return c.Cfg.Constraints.MinClaimerBalance, nil // no claimer address to check against; assume healthy
	}
	return c.Chain.GetBalance(ctx, c.Nominators[0].Address())
}
