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

type fakeNominator struct {
	stash, address, controller string
	sent                       [][]string
}

func (n *fakeNominator) Stash() string      { return n.stash }
func (n *fakeNominator) Address() string    { return n.address }
func (n *fakeNominator) Controller() string { return n.controller }
func (n *fakeNominator) IsProxy() bool      { return true }

func (n *fakeNominator) SendStakingTx(_ context.Context, targets []string) (string, error) {
	n.sent = append(n.sent, targets)
	return "0xblock", nil
}

func (n *fakeNominator) CancelTx(_ context.Context, _ uint64) error { return nil }

func newExecutionContext(t *testing.T, chainClient *chain.FakeClient, st *fakeStore, nominator *fakeNominator) *jobs.Context {
	cfg := config.Defaults()
	cfg.Proxy.TimeDelayBlocks = 10
	return &jobs.Context{
		Store:      st,
		Chain:      chainClient,
		Cfg:        cfg,
		Logger:     zaptest.NewLogger(t),
		Nominators: []jobs.Nominator{nominator},
	}
}

// Concrete scenario 3: a DelayedTx recorded at block 100 with
// timeDelayBlocks=10 is a no-op while currentBlock=109, and fires (then is
// deleted) once currentBlock reaches 110.
func TestExecutionDelayedWindow(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	nominator := &fakeNominator{stash: "stash-a", address: "addr-a", controller: "ctrl-a"}
	require.NoError(t, st.UpsertDelayedTx(ctx, &models.DelayedTx{
		Number: 100, Controller: "ctrl-a", Targets: []string{"v1", "v2"},
	}))

	chainClient := chain.NewFakeClient()
	chainClient.BlockHeight = 109
	c := newExecutionContext(t, chainClient, st, nominator)

	require.NoError(t, c.Execution(ctx))
	pending, err := st.ListDelayedTx(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "tx below the delay window must not fire yet")
	require.Empty(t, nominator.sent)

	chainClient.BlockHeight = 110
	require.NoError(t, c.Execution(ctx))

	pending, err = st.ListDelayedTx(ctx)
	require.NoError(t, err)
	require.Empty(t, pending, "tx at the delay window boundary must fire and be removed")
	require.Equal(t, [][]string{{"v1", "v2"}}, nominator.sent)
}

func TestExecutionSkipsUnknownController(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	nominator := &fakeNominator{stash: "stash-a", address: "addr-a", controller: "ctrl-a"}
	require.NoError(t, st.UpsertDelayedTx(ctx, &models.DelayedTx{
		Number: 0, Controller: "ctrl-unknown", Targets: []string{"v1"},
	}))

	chainClient := chain.NewFakeClient()
	chainClient.BlockHeight = 1000
	c := newExecutionContext(t, chainClient, st, nominator)

	require.NoError(t, c.Execution(ctx))
	pending, err := st.ListDelayedTx(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "a tx with no owning nominator is left for a future tick, not dropped")
}
