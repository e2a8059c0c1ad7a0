package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/retry"
)

// UnclaimedEras refreshes each candidate's set of eras with unclaimed
// rewards and writes the corresponding invalidity verdict directly, since
// the threshold comparison only needs the freshly fetched set and the
// current era (§4.2's "Candidate.unclaimedEras, invalidity(UNCLAIMED_REWARDS)").
// Validity recomputes the same verdict on its own schedule; this write lets
// a newly-discovered unclaimed era surface without waiting for that tick.
func (c *Context) UnclaimedEras(ctx context.Context) error {
	currentEra, err := c.Chain.GetCurrentEra(ctx)
	if err != nil {
		c.Logger.Warn("unclaimedEras: chain unreachable", zap.Error(err))
		return nil
	}

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
			var eras []uint32
			retryErr := retry.WithBackoff(ctx, retry.ChainCallConfig(), c.Logger, "unclaimedEras_fetch", func() error {
				fetched, fetchErr := c.Chain.GetUnclaimedEras(ctx, stash)
				if fetchErr != nil {
					return fetchErr
				}
				eras = fetched
				return nil
			})
			if retryErr != nil {
				c.Logger.Warn("unclaimedEras: chain call failed", zap.String("stash", stash), zap.Error(retryErr))
				return
			}

			if err := c.Store.SetUnclaimedEras(ctx, stash, eras); err != nil {
				c.Logger.Warn("unclaimedEras: store write failed", zap.String("stash", stash), zap.Error(err))
				return
			}

			valid, details := unclaimedErasValid(eras, currentEra, c.Cfg.Constraints.UnclaimedErasThreshold)
			if err := c.Store.SetInvalidity(ctx, stash, models.InvalidityUnclaimedRewards, valid, details); err != nil {
				c.Logger.Warn("unclaimedEras: invalidity write failed", zap.String("stash", stash), zap.Error(err))
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		c.Logger.Warn("unclaimedEras: fan-out group error", zap.Error(err))
	}
	return nil
}

func unclaimedErasValid(eras []uint32, currentEra uint32, threshold uint32) (bool, string) {
	for _, era := range eras {
		if currentEra > era && currentEra-era > threshold {
			return false, "has unclaimed rewards older than threshold"
		}
	}
	return true, fmt.Sprintf("%d unclaimed era(s), none past threshold", len(eras))
}
