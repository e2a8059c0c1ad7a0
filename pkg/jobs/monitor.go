package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// ReleaseFeed is the upstream release feed the Monitor job polls (§4.2).
// The feed's own HTTP/registry client is outside this module's scope.
type ReleaseFeed interface {
	LatestRelease(ctx context.Context) (name string, publishedAt time.Time, err error)
}

// Monitor records the latest known upstream release (§4.2's "Monitor" row).
// A nil feed is valid for demo wiring — the job then no-ops, leaving
// whatever Release row was seeded.
func (c *Context) Monitor(ctx context.Context, feed ReleaseFeed) error {
	if feed == nil {
		return nil
	}

	name, publishedAt, err := feed.LatestRelease(ctx)
	if err != nil {
		c.Logger.Warn("monitor: release feed unreachable", zap.Error(err))
		return nil
	}

	return c.Store.UpsertRelease(ctx, &models.Release{Name: name, PublishedAt: publishedAt})
}
