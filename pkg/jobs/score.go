package jobs

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/constraints"
)

// Score runs the Constraint Evaluator's fleet-wide scoring over every valid
// candidate, persists the result, and derives each candidate's rank from the
// new score ordering — docking or forgiving fault points when a candidate's
// rank moves between this tick and the last (§4.2, §4.3). Must run after
// Validity, which computes the `valid` flag this job filters on.
func (c *Context) Score(ctx context.Context) error {
	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	deps := constraints.Deps{Store: c.Store, Chain: c.Chain, Cfg: c.Cfg.Constraints, Now: time.Now()}
	scores, meta, err := constraints.ScoreAllCandidates(deps, candidates, c.Cfg.Constraints.Weights)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		return nil
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].Total > scores[j].Total })

	byStash := make(map[string]*candidateRankInfo, len(candidates))
	for _, cd := range candidates {
		byStash[cd.Stash] = &candidateRankInfo{prevRank: cd.Rank, faults: cd.Faults}
	}

	now := time.Now()
	for i, s := range scores {
		newRank := i + 1

		if err := c.Store.SetScore(ctx, s); err != nil {
			c.Logger.Warn("score: store write failed", zap.String("stash", s.Stash), zap.Error(err))
			continue
		}

		info, ok := byStash[s.Stash]
		if !ok {
			continue
		}
		if newRank != info.prevRank {
			if err := c.Store.SetRank(ctx, s.Stash, info.prevRank, newRank, now); err != nil {
				c.Logger.Warn("score: rank write failed", zap.String("stash", s.Stash), zap.Error(err))
				continue
			}
			newFaults := constraints.AdjustFaultsForRankChange(info.faults, info.prevRank, newRank)
			if newFaults != info.faults {
				if err := c.Store.SetFaults(ctx, s.Stash, newFaults, "rank change", now); err != nil {
					c.Logger.Warn("score: faults write failed", zap.String("stash", s.Stash), zap.Error(err))
				}
			}
		}
	}

	if err := c.Store.SetScoreMetadata(ctx, meta); err != nil {
		c.Logger.Warn("score: metadata write failed", zap.Error(err))
	}
	return nil
}

type candidateRankInfo struct {
	prevRank int
	faults   int
}
