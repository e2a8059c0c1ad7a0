package jobs

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/models"
)

const eraPointsWindow = 84

// EraPoints walks the 84 eras preceding the active one, backfilling
// TotalEraPoints/EraPoints rows, then refreshes the active era itself since
// its point total moves within the era (§4.4).
func (c *Context) EraPoints(ctx context.Context) error {
	active, err := c.Chain.GetActiveEraIndex(ctx)
	if err != nil {
		c.Logger.Warn("eraPoints: chain unreachable", zap.Error(err))
		return nil
	}

	start := int64(active) - eraPointsWindow
	if start < 0 {
		start = 0
	}

	for era := uint32(start); era < active; era++ {
		if err := c.populateEra(ctx, era); err != nil {
			c.Logger.Warn("eraPoints: era populate failed", zap.Uint32("era", era), zap.Error(err))
		}
	}

	// The active era's total is still moving; always refresh it.
	if err := c.refreshEra(ctx, active); err != nil {
		c.Logger.Warn("eraPoints: active era populate failed", zap.Uint32("era", active), zap.Error(err))
	}
	return nil
}

func (c *Context) populateEra(ctx context.Context, era uint32) error {
	existing, err := c.Store.GetTotalEraPoints(ctx, era)
	if err == nil && existing.Filled() && existing.Median != nil {
		return nil
	}
	return c.refreshEra(ctx, era)
}

// refreshEra fetches era's points from the chain and rewrites its rows,
// whether or not they are already filled.
func (c *Context) refreshEra(ctx context.Context, era uint32) error {
	total, perValidator, err := c.Chain.GetTotalEraPoints(ctx, era)
	if err != nil {
		return err
	}

	validators := make([]models.ValidatorEraPoints, 0, len(perValidator))
	points := make([]float64, 0, len(perValidator))
	for address, ep := range perValidator {
		validators = append(validators, models.ValidatorEraPoints{Address: address, EraPoints: ep})
		points = append(points, float64(ep))

		changed, err := c.Store.UpsertEraPoints(ctx, &models.EraPoints{Era: era, Address: address, EraPoints: ep})
		if err != nil {
			c.Logger.Warn("eraPoints: per-validator write failed",
				zap.Uint32("era", era), zap.String("address", address), zap.Error(err))
			continue
		}
		_ = changed // idempotence is enforced store-side; nothing further to do here
	}
	sort.Slice(validators, func(i, j int) bool { return validators[i].Address < validators[j].Address })

	t := &models.TotalEraPoints{Era: era, TotalEraPoints: total, ValidatorsEraPoints: validators}
	if len(points) > 0 {
		sort.Float64s(points)
		med := medianOf(points)
		avg := meanOf(points)
		max, min := points[len(points)-1], points[0]
		t.Median, t.Average = &med, &avg
		maxU, minU := uint64(max), uint64(min)
		t.Max, t.Min = &maxU, &minU
	}
	return c.Store.UpsertTotalEraPoints(ctx, t)
}

// medianOf/meanOf mirror pkg/constraints' statistics (§4.3) but stay local:
// the EraPoints job has no other reason to depend on the Constraint
// Evaluator package. medianOf assumes sorted ascending input.
func medianOf(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
