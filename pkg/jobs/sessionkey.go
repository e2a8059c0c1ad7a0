package jobs

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/retry"
)

// SessionKey refreshes each candidate's queued/next session keys from the
// chain (§4.2).
func (c *Context) SessionKey(ctx context.Context) error {
	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	pool := fanoutPool(c.Cfg.Fanout.Concurrency)
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)

	for _, candidate := range candidates {
		stash := candidate.Stash
		group.Submit(func() {
			var queued, next string
			retryErr := retry.WithBackoff(ctx, retry.ChainCallConfig(), c.Logger, "sessionkey_fetch", func() error {
				q, qErr := c.Chain.GetQueuedKeys(ctx, stash)
				if qErr != nil {
					return qErr
				}
				n, nErr := c.Chain.GetNextKeys(ctx, stash)
				if nErr != nil {
					return nErr
				}
				queued, next = q, n
				return nil
			})
			if retryErr != nil {
				c.Logger.Warn("sessionKey: chain call failed", zap.String("stash", stash), zap.Error(retryErr))
				return
			}
			if err := c.Store.SetSessionKeys(ctx, stash, queued, next); err != nil {
				c.Logger.Warn("sessionKey: store write failed", zap.String("stash", stash), zap.Error(err))
			}
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		c.Logger.Warn("sessionKey: fan-out group error", zap.Error(err))
	}
	return nil
}
