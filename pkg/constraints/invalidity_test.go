package constraints

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/models"
)

func validCandidate(stash string) *models.Candidate {
	now := time.Now()
	return &models.Candidate{
		Stash:             stash,
		Bonded:            1000,
		Controller:        "controller-1",
		NodeRefs:          1,
		OnlineSince:       now.Add(-7 * 24 * time.Hour),
		IdentityRecord:    models.Identity{Verified: true},
		RewardDestination: "Staked",
		Commission:        5,
		Invalidity:        models.InvalidityMap{},
	}
}

// Invariant: c.Valid must always equal the conjunction of every entry in
// c.Invalidity after CheckCandidate runs.
func TestCheckCandidateValidIsConjunctionOfInvalidity(t *testing.T) {
	ctx := context.Background()
	st := newFakeConstraintsStore()
	c := validCandidate("stash-1")
	require.NoError(t, st.UpsertCandidate(ctx, c))

	chainClient := chain.NewFakeClient()
	deps := Deps{Store: st, Chain: chainClient, Cfg: config.Defaults().Constraints, Now: time.Now()}

	require.NoError(t, CheckCandidate(ctx, deps, c))
	require.True(t, c.Invalidity.Valid())
	require.True(t, c.Valid)

	// Flip one check to fail and re-run: the conjunction must flip too.
	c.IdentityRecord.Verified = false
	require.NoError(t, CheckCandidate(ctx, deps, c))
	require.False(t, c.Invalidity.Valid())
	require.False(t, c.Valid)
}

func TestCheckCommissionCap(t *testing.T) {
	c := validCandidate("stash-1")
	c.Commission = 50
	deps := Deps{Cfg: config.ConstraintsConfig{CommissionCap: 0.10}}

	valid, _, err := checkCommission(context.Background(), c, deps)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestCheckUnclaimedRewardsThreshold(t *testing.T) {
	c := validCandidate("stash-1")
	c.UnclaimedEras = []uint32{90}
	chainClient := chain.NewFakeClient()
	chainClient.CurrentEra = 100
	deps := Deps{Chain: chainClient, Cfg: config.ConstraintsConfig{UnclaimedErasThreshold: 4}}

	valid, _, err := checkUnclaimedRewards(context.Background(), c, deps)
	require.NoError(t, err)
	require.False(t, valid, "10 eras unclaimed exceeds a threshold of 4")
}
