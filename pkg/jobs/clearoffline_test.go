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

// Concrete scenario 12: after ClearOffline, every candidate's
// offlineAccumulated is zero.
func TestClearOfflineZeroesEveryCandidate(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	require.NoError(t, st.UpsertCandidate(ctx, &models.Candidate{Stash: "a", OfflineAccumulated: 5000}))
	require.NoError(t, st.UpsertCandidate(ctx, &models.Candidate{Stash: "b", OfflineAccumulated: 0}))
	require.NoError(t, st.UpsertCandidate(ctx, &models.Candidate{Stash: "c", OfflineAccumulated: 120_000}))

	c := &jobs.Context{Store: st, Chain: chain.NewFakeClient(), Cfg: config.Defaults(), Logger: zaptest.NewLogger(t)}
	require.NoError(t, c.ClearOffline(ctx))

	candidates, err := st.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	for _, cand := range candidates {
		require.Zero(t, cand.OfflineAccumulated, "stash %s must be zeroed", cand.Stash)
	}
}
