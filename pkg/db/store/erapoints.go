package store

import (
	"context"
	"encoding/json"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// GetEraPoints returns the (era, address) counter, or a postgres.IsNoRows
// error if it has never been recorded.
func (s *PostgresStore) GetEraPoints(ctx context.Context, era uint32, address string) (*models.EraPoints, error) {
	row := s.db.QueryRow(ctx, `SELECT era, address, era_points FROM era_points WHERE era = $1 AND address = $2`, era, address)
	var ep models.EraPoints
	if err := row.Scan(&ep.Era, &ep.Address, &ep.EraPoints); err != nil {
		return nil, err
	}
	return &ep, nil
}

// UpsertEraPoints writes ep, reporting whether the stored value actually
// changed. Per §4.4's "era points only move upward within an era" rule, the
// write is a no-op (changed=false) when the stored value is already >= the
// new one — the WHERE guard below makes that comparison atomic rather than
// requiring a read-then-conditionally-write round trip.
func (s *PostgresStore) UpsertEraPoints(ctx context.Context, ep *models.EraPoints) (bool, error) {
	const query = `
		INSERT INTO era_points (era, address, era_points) VALUES ($1, $2, $3)
		ON CONFLICT (era, address) DO UPDATE SET era_points = EXCLUDED.era_points
		WHERE era_points.era_points < EXCLUDED.era_points
	`
	tag, err := s.db.GetExecutor(ctx).Exec(ctx, query, ep.Era, ep.Address, ep.EraPoints)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetTotalEraPoints returns the per-era aggregate, or a postgres.IsNoRows
// error if the era has no snapshot yet.
func (s *PostgresStore) GetTotalEraPoints(ctx context.Context, era uint32) (*models.TotalEraPoints, error) {
	row := s.db.QueryRow(ctx, `
		SELECT era, total_era_points, validators_era_points, median, average, max, min
		FROM total_era_points WHERE era = $1
	`, era)

	var t models.TotalEraPoints
	var validatorsRaw []byte
	if err := row.Scan(&t.Era, &t.TotalEraPoints, &validatorsRaw, &t.Median, &t.Average, &t.Max, &t.Min); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(validatorsRaw, &t.ValidatorsEraPoints); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertTotalEraPoints writes t. Per §4.4/§8, once an era is Filled() the
// caller must only ever pass a t whose Median/Average/Max/Min go from nil to
// non-nil — the store does not itself enforce the monotonicity. The EraPoints
// job skips past eras that are filled and have statistics, but always
// rewrites the active era.
func (s *PostgresStore) UpsertTotalEraPoints(ctx context.Context, t *models.TotalEraPoints) error {
	validatorsRaw, err := json.Marshal(nonNilValidatorEraPoints(t.ValidatorsEraPoints))
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO total_era_points (era, total_era_points, validators_era_points, median, average, max, min)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (era) DO UPDATE SET
			total_era_points = EXCLUDED.total_era_points,
			validators_era_points = EXCLUDED.validators_era_points,
			median = EXCLUDED.median,
			average = EXCLUDED.average,
			max = EXCLUDED.max,
			min = EXCLUDED.min
	`
	return s.db.Exec(ctx, query, t.Era, t.TotalEraPoints, validatorsRaw, t.Median, t.Average, t.Max, t.Min)
}

func nonNilValidatorEraPoints(v []models.ValidatorEraPoints) []models.ValidatorEraPoints {
	if v == nil {
		return []models.ValidatorEraPoints{}
	}
	return v
}
