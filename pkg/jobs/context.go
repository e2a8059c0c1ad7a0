// Package jobs holds one body per entry in the Job Catalog (§4.2), each a
// plain function of (ctx, *Context) — the scheduler (pkg/scheduler) is
// responsible for cron dispatch and non-reentrancy; this package only
// implements what runs once a tick is let through.
package jobs

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/store"
)

// Context bundles every collaborator a job body may need. Built once at
// startup and shared by every job, per §5's "one store client, one chain
// adapter, one optional bot... long-lived for process lifetime."
type Context struct {
	Store  store.Store
	Chain  chain.Client
	Cfg    config.Config
	Logger *zap.Logger

	Nominators []Nominator
	Claimer    Claimer
	Bot        Bot
}

// fanoutPool returns a worker pool of n workers (callers pass
// cfg.Fanout.Concurrency), or of 1 worker if n < 1. Execution, RewardClaim
// and Cancel do not use a pool; they run as plain sequential loops.
func fanoutPool(n int) pond.Pool {
	if n < 1 {
		n = 1
	}
	return pond.NewPool(n)
}

// notify sends text via Bot if one is configured, logging but not failing
// the job on delivery error — notification is best-effort (§6, §7).
func (c *Context) notify(ctx context.Context, text string) {
	if c.Bot == nil {
		return
	}
	if err := c.Bot.SendMessage(ctx, text); err != nil {
		c.Logger.Warn("notification delivery failed", zap.Error(err))
	}
}
