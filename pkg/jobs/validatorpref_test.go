package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/jobs"
)

// Concrete scenario 5: a raw commission of 50,000,000 parts-per-billion must
// be stored as 5 (percent).
func TestValidatorPrefScalesCommission(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	require.NoError(t, st.UpsertCandidate(ctx, models.NewCandidate("Validator One", "stash-1")))

	chainClient := chain.NewFakeClient()
	chainClient.Commissions["stash-1"] = 50_000_000
	chainClient.Controllers["stash-1"] = "controller-1"
	chainClient.RewardDestinations["stash-1"] = "Staked"
	chainClient.Bonded["stash-1"] = 1_000_000

	c := &jobs.Context{Store: st, Chain: chainClient, Cfg: config.Defaults(), Logger: zaptest.NewLogger(t)}
	require.NoError(t, c.ValidatorPref(ctx))

	got, err := st.GetCandidate(ctx, "stash-1")
	require.NoError(t, err)
	require.Equal(t, 5.0, got.Commission)
}

// Concrete scenario 8: running ValidatorPref twice against unchanged chain
// state must leave the candidate record unchanged after the first run.
func TestValidatorPrefIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	require.NoError(t, st.UpsertCandidate(ctx, models.NewCandidate("Validator One", "stash-1")))

	chainClient := chain.NewFakeClient()
	chainClient.Commissions["stash-1"] = 20_000_000
	chainClient.Controllers["stash-1"] = "controller-1"
	chainClient.RewardDestinations["stash-1"] = "Staked"
	chainClient.Bonded["stash-1"] = 42

	c := &jobs.Context{Store: st, Chain: chainClient, Cfg: config.Defaults(), Logger: zaptest.NewLogger(t)}
	require.NoError(t, c.ValidatorPref(ctx))
	first, err := st.GetCandidate(ctx, "stash-1")
	require.NoError(t, err)
	firstCopy := *first

	require.NoError(t, c.ValidatorPref(ctx))
	second, err := st.GetCandidate(ctx, "stash-1")
	require.NoError(t, err)

	require.Equal(t, firstCopy, *second)
}
