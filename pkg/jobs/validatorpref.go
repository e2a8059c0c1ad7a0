package jobs

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/db/store"
	"github.com/w3f/1kv-core/pkg/retry"
	"github.com/w3f/1kv-core/pkg/ss58"
)

// commissionScale is the divisor that turns the chain's raw parts-per-
// billion commission into a percentage (§3, §8 scenario 5: 50000000 raw →
// 5 stored). decimal.Decimal is used for this conversion rather than plain
// float64 division so the scaling itself is exact regardless of the raw
// value's magnitude.
var commissionScale = decimal.NewFromInt(10_000_000)

// ValidatorPref refreshes each candidate's identity, commission, controller,
// reward destination, and bonded amount from the chain (§4.2).
func (c *Context) ValidatorPref(ctx context.Context) error {
	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	pool := fanoutPool(c.Cfg.Fanout.Concurrency)
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)

	for _, candidate := range candidates {
		stash := candidate.Stash
		group.Submit(func() {
			pref, err := c.fetchValidatorPref(ctx, stash)
			if err != nil {
				c.Logger.Warn("validatorPref: chain call failed", zap.String("stash", stash), zap.Error(err))
				return
			}
			if err := c.Store.SetValidatorPref(ctx, stash, pref); err != nil {
				c.Logger.Warn("validatorPref: store write failed", zap.String("stash", stash), zap.Error(err))
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		c.Logger.Warn("validatorPref: fan-out group error", zap.Error(err))
	}
	return nil
}

func (c *Context) fetchValidatorPref(ctx context.Context, stash string) (store.ValidatorPref, error) {
	var pref store.ValidatorPref

	retryErr := retry.WithBackoff(ctx, retry.ChainCallConfig(), c.Logger, "validatorPref_fetch", func() error {
		name, sub, verified, err := c.Chain.GetFormattedIdentity(ctx, stash)
		if err != nil {
			return err
		}
		rawCommission, err := c.Chain.GetCommission(ctx, stash)
		if err != nil {
			return err
		}
		controller, err := c.Chain.GetControllerFromStash(ctx, stash)
		if err != nil {
			return err
		}
		rewardDest, err := c.Chain.GetRewardDestination(ctx, stash)
		if err != nil {
			return err
		}
		bonded, err := c.Chain.GetBondedAmount(ctx, stash)
		if err != nil {
			return err
		}

		canonicalController, err := ss58.Canonicalize(controller, c.Cfg.Global.NetworkPrefix)
		if err != nil {
			canonicalController = controller // identity: not every controller is SS58-addressable
		}

		pref = store.ValidatorPref{
			Identity:          models.Identity{Name: name, Sub: sub, Verified: verified},
			Commission:        decimal.NewFromFloat(rawCommission).Div(commissionScale).InexactFloat64(),
			Controller:        canonicalController,
			RewardDestination: rewardDest,
			Bonded:            bonded,
		}
		return nil
	})
	return pref, retryErr
}
