package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/w3f/1kv-core/pkg/scheduler"
)

// Concrete scenario 1: a job whose body sleeps 5s registered on a 1-second
// cron must not re-enter — across 10s of wall time the body starts at most
// 3 times (fencepost: t=0, ~t=5, ~t=10 tick windows), never once per tick.
func TestSchedulerNonReentrancy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := scheduler.New(ctx, zaptest.NewLogger(t))

	var entries atomic.Int32
	err := s.Register(scheduler.Job{
		Name: "slow",
		Spec: "* * * * * *",
		Body: func(ctx context.Context) error {
			entries.Add(1)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
			}
			return nil
		},
	})
	require.NoError(t, err)

	s.Start()
	time.Sleep(10 * time.Second)
	s.Stop()

	require.LessOrEqual(t, entries.Load(), int32(3), "ticks firing while a body is in flight must be dropped, not queued")
}

func TestSchedulerDropsTicksDuringLongRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := scheduler.New(ctx, zaptest.NewLogger(t))

	release := make(chan struct{})
	var entries atomic.Int32
	require.NoError(t, s.Register(scheduler.Job{
		Name: "blocked",
		Spec: "* * * * * *",
		Body: func(ctx context.Context) error {
			entries.Add(1)
			<-release
			return nil
		},
	}))

	s.Start()
	time.Sleep(3500 * time.Millisecond)
	require.Equal(t, int32(1), entries.Load(), "second and third tick must be dropped while the first body still holds the latch")
	close(release)
	s.Stop()
}
