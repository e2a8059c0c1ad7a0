package jobs_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/jobs"
)

// countingChainClient wraps a FakeClient and counts GetTotalEraPoints calls,
// so a test can observe whether a "filled" era was re-fetched.
type countingChainClient struct {
	*chain.FakeClient
	totalEraPointsCalls atomic.Int32
}

func (c *countingChainClient) GetTotalEraPoints(ctx context.Context, era uint32) (uint64, map[string]uint64, error) {
	c.totalEraPointsCalls.Add(1)
	return c.FakeClient.GetTotalEraPoints(ctx, era)
}

// Concrete scenario 7/9: after the 84-era backward window is fully
// populated and "filled" (TotalEraPoints >= 70000, Median present), a second
// run must skip re-fetching every era except the still-moving active era.
func TestEraPointsSkipsFilledEras(t *testing.T) {
	ctx := context.Background()

	inner := chain.NewFakeClient()
	inner.EraIndex = 84
	inner.EraPointsTotal = 80000
	inner.EraPointsByVal = map[string]uint64{"v1": 50000, "v2": 30000}

	chainClient := &countingChainClient{FakeClient: inner}

	c := &jobs.Context{
		Store:  newFakeStore(),
		Chain:  chainClient,
		Cfg:    config.Defaults(),
		Logger: zaptest.NewLogger(t),
	}

	require.NoError(t, c.EraPoints(ctx))
	require.EqualValues(t, 85, chainClient.totalEraPointsCalls.Load(), "first run populates eras 0..83 plus the active era 84")

	chainClient.totalEraPointsCalls.Store(0)
	require.NoError(t, c.EraPoints(ctx))
	require.EqualValues(t, 1, chainClient.totalEraPointsCalls.Load(), "second run must skip every filled era and only refresh the active one")
}

// Boundary: at boot, activeEra < 84 must clamp the backward walk at era 0
// instead of underflowing into negative eras.
func TestEraPointsClampsWindowNearGenesis(t *testing.T) {
	ctx := context.Background()

	inner := chain.NewFakeClient()
	inner.EraIndex = 3
	inner.EraPointsTotal = 100
	inner.EraPointsByVal = map[string]uint64{"v1": 100}

	chainClient := &countingChainClient{FakeClient: inner}
	c := &jobs.Context{
		Store:  newFakeStore(),
		Chain:  chainClient,
		Cfg:    config.Defaults(),
		Logger: zaptest.NewLogger(t),
	}

	require.NoError(t, c.EraPoints(ctx))
	require.EqualValues(t, 4, chainClient.totalEraPointsCalls.Load(), "eras 0..3 only, never a negative era")
}
