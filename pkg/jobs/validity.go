package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/constraints"
)

// Validity runs the Constraint Evaluator's per-candidate checks over the
// full candidate set (§4.2, §4.3). Must run after ValidatorPref,
// UnclaimedEras, ActiveValidator, and Inclusion, per §4.2's ordering note —
// enforced only by coarser-to-finer cron pacing, not by this job itself.
func (c *Context) Validity(ctx context.Context) error {
	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	release, err := c.Store.LatestRelease(ctx)
	if err != nil {
		release = nil // no release recorded yet; checkClientUpgrade treats nil as always-valid
	}

	now := time.Now()
	pool := fanoutPool(c.Cfg.Fanout.Concurrency)
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)

	for _, candidate := range candidates {
		group.Submit(func() {
			deps := constraints.Deps{
				Store:   c.Store,
				Chain:   c.Chain,
				Cfg:     c.Cfg.Constraints,
				Now:     now,
				Release: release,
			}
			if err := constraints.CheckCandidate(ctx, deps, candidate); err != nil {
				c.Logger.Warn("validity: check failed", zap.String("stash", candidate.Stash), zap.Error(err))
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		c.Logger.Warn("validity: fan-out group error", zap.Error(err))
	}
	return nil
}
