// Package constraints is the Constraint Evaluator (§4.3): per-candidate
// invalidity verdicts and fleet-wide scoring.
package constraints

import (
	"context"
	"fmt"
	"time"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/db/store"
)

// check is one invalidity-type test: given a candidate and the evaluator's
// collaborators, it reports whether the candidate passes and, if not, a
// human-readable reason.
type check struct {
	typ models.InvalidityType
	run func(ctx context.Context, c *models.Candidate, deps Deps) (valid bool, details string, err error)
}

// Deps bundles the collaborators CheckCandidate and the checks need beyond
// the candidate record itself.
type Deps struct {
	Store   store.Store
	Chain   chain.Client
	Cfg     config.ConstraintsConfig
	Now     time.Time
	Release *models.Release // latest known release, nil if none recorded
}

var allChecks = []check{
	{models.InvalidityOnline, checkOnline},
	{models.InvalidityValidateIntention, checkValidateIntention},
	{models.InvalidityClientUpgrade, checkClientUpgrade},
	{models.InvalidityConnectionTime, checkConnectionTime},
	{models.InvalidityIdentity, checkIdentity},
	{models.InvalidityAccumulatedOffline, checkAccumulatedOfflineTime},
	{models.InvalidityRewardDestination, checkRewardDestination},
	{models.InvalidityCommission, checkCommission},
	{models.InvaliditySelfStake, checkSelfStake},
	{models.InvalidityUnclaimedRewards, checkUnclaimedRewards},
	{models.InvalidityBlocked, checkBlocked},
	{models.InvalidityKusamaRank, checkKusamaRank},
}

// CheckCandidate runs every invalidity check against c and writes each
// verdict through the store's type-specific setter (§4.3 steps 1-4), then
// sets the overall valid flag to the conjunction of every current entry.
// A per-check error (typically a chain-adapter failure) is neither logged nor
// returned; it is treated as "skip this check this tick" — the prior verdict
// for that type is left in place rather than being overwritten with a guess,
// and still counts toward the overall flag.
func CheckCandidate(ctx context.Context, deps Deps, c *models.Candidate) error {
	allValid := true

	for _, chk := range allChecks {
		valid, details, err := chk.run(ctx, c, deps)
		if err != nil {
			if prev, ok := c.Invalidity[chk.typ]; ok && !prev.Valid {
				allValid = false
			}
			continue
		}
		if err := deps.Store.SetInvalidity(ctx, c.Stash, chk.typ, valid, details); err != nil {
			return fmt.Errorf("set invalidity %s for %s: %w", chk.typ, c.Stash, err)
		}
		c.Invalidity.Set(chk.typ, valid, deps.Now, details)
		if !valid {
			allValid = false
		}
	}

	return deps.Store.SetValid(ctx, c.Stash, allValid)
}

func checkOnline(_ context.Context, c *models.Candidate, _ Deps) (bool, string, error) {
	if c.NodeRefs > 0 && c.OfflineSince.IsZero() {
		return true, "", nil
	}
	return false, "node has no active telemetry session", nil
}

func checkValidateIntention(_ context.Context, c *models.Candidate, _ Deps) (bool, string, error) {
	if c.Bonded > 0 && c.Controller != "" {
		return true, "", nil
	}
	return false, "chain does not show a validate intent", nil
}

func checkClientUpgrade(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if deps.Release == nil || c.Version == "" {
		return true, "", nil
	}
	if c.Version == deps.Release.Name {
		return true, "", nil
	}
	grace := deps.Cfg.ClientUpgradeGraceEras
	if grace > 0 && deps.Now.Sub(deps.Release.PublishedAt) < graceWindow(grace) {
		return true, "", nil
	}
	return false, fmt.Sprintf("running %s, latest is %s", c.Version, deps.Release.Name), nil
}

// graceWindow approximates an era-count grace period in wall-clock time; a
// precise conversion needs the chain's era length, which is out of this
// module's scope, so a fixed 6-hour-per-era estimate is used.
func graceWindow(eras uint32) time.Duration {
	return time.Duration(eras) * 6 * time.Hour
}

func checkConnectionTime(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if c.OnlineSince.IsZero() {
		return false, "node has never reported online", nil
	}
	uptime := deps.Now.Sub(c.OnlineSince)
	if uptime.Milliseconds() >= deps.Cfg.MinConnectionTime {
		return true, "", nil
	}
	return false, "uptime below minimum connection time", nil
}

func checkIdentity(_ context.Context, c *models.Candidate, _ Deps) (bool, string, error) {
	if c.IdentityRecord.Verified {
		return true, "", nil
	}
	return false, "on-chain identity not set or not verified", nil
}

func checkAccumulatedOfflineTime(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if c.OfflineAccumulated <= deps.Cfg.OfflineWeeklyCapMs {
		return true, "", nil
	}
	return false, "accumulated offline time exceeds weekly cap", nil
}

func checkRewardDestination(_ context.Context, c *models.Candidate, _ Deps) (bool, string, error) {
	if c.RewardDestination == "Staked" {
		return true, "", nil
	}
	return false, "reward destination is not Staked", nil
}

func checkCommission(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if c.Commission <= deps.Cfg.CommissionCap*100 {
		return true, "", nil
	}
	return false, fmt.Sprintf("commission %.2f%% exceeds cap %.2f%%", c.Commission, deps.Cfg.CommissionCap*100), nil
}

func checkSelfStake(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if c.Bonded >= deps.Cfg.MinSelfStake {
		return true, "", nil
	}
	return false, "self-bond below minimum", nil
}

func checkUnclaimedRewards(ctx context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	currentEra, err := deps.Chain.GetCurrentEra(ctx)
	if err != nil {
		return false, "", err
	}
	for _, era := range c.UnclaimedEras {
		if currentEra > era && uint32(currentEra-era) > deps.Cfg.UnclaimedErasThreshold {
			return false, "has unclaimed rewards older than threshold", nil
		}
	}
	return true, "", nil
}

func checkBlocked(ctx context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	pref, err := deps.Chain.GetValidatorPref(ctx, c.Stash)
	if err != nil {
		return false, "", err
	}
	if pref.BlockedNominations {
		return false, "candidate blocks external nominations", nil
	}
	return true, "", nil
}

// checkKusamaRank approximates the sibling-chain rank check using the
// candidate's own most recently computed rank, since a separate sibling-
// chain integration is outside this module's boundary.
func checkKusamaRank(_ context.Context, c *models.Candidate, deps Deps) (bool, string, error) {
	if c.Rank == 0 {
		return true, "", nil
	}
	if c.Rank >= deps.Cfg.KusamaRankMinimum {
		return true, "", nil
	}
	return false, "sibling-chain rank below minimum", nil
}
