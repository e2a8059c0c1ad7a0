package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// EraStats snapshots the candidate population's valid/active counts for the
// active era (§4.2). Reads fields Validity and ActiveValidator write, so it
// is scheduled less frequently than either per §4.2's ordering note.
func (c *Context) EraStats(ctx context.Context) error {
	active, err := c.Chain.GetActiveEraIndex(ctx)
	if err != nil {
		c.Logger.Warn("eraStats: chain unreachable", zap.Error(err))
		return nil
	}

	candidates, err := c.Store.ListCandidates(ctx)
	if err != nil {
		return err
	}

	stats := &models.EraStats{Era: active, When: time.Now(), TotalNodes: len(candidates)}
	for _, candidate := range candidates {
		if candidate.Valid {
			stats.Valid++
		}
		if candidate.Active {
			stats.Active++
		}
	}

	return c.Store.UpsertEraStats(ctx, stats)
}
