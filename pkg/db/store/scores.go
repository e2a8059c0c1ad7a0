package store

import (
	"context"
	"encoding/json"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// SetScore upserts a candidate's latest score. There is no history table for
// scores — only the latest run matters for nomination selection (§4.3).
func (s *PostgresStore) SetScore(ctx context.Context, score *models.ValidatorScore) error {
	const query = `
		INSERT INTO validator_scores (
			stash, inclusion, span_inclusion, discovered, nominated, rank, unclaimed,
			bonded, faults, offline, ext_nominations, randomness, aggregate, total, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, now())
		ON CONFLICT (stash) DO UPDATE SET
			inclusion = EXCLUDED.inclusion,
			span_inclusion = EXCLUDED.span_inclusion,
			discovered = EXCLUDED.discovered,
			nominated = EXCLUDED.nominated,
			rank = EXCLUDED.rank,
			unclaimed = EXCLUDED.unclaimed,
			bonded = EXCLUDED.bonded,
			faults = EXCLUDED.faults,
			offline = EXCLUDED.offline,
			ext_nominations = EXCLUDED.ext_nominations,
			randomness = EXCLUDED.randomness,
			aggregate = EXCLUDED.aggregate,
			total = EXCLUDED.total,
			updated_at = now()
	`
	return s.db.Exec(ctx, query,
		score.Stash, score.Inclusion, score.SpanInclusion, score.Discovered, score.Nominated, score.Rank, score.Unclaimed,
		score.Bonded, score.Faults, score.Offline, score.ExtNominations, score.Randomness, score.Aggregate, score.Total,
	)
}

// SetScoreMetadata overwrites the singleton per-run statistics/weights
// snapshot (§3). Stored as a single jsonb payload since it's read back
// whole, never queried by field.
func (s *PostgresStore) SetScoreMetadata(ctx context.Context, meta *models.ValidatorScoreMetadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO validator_score_metadata (id, payload) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`
	return s.db.Exec(ctx, query, payload)
}
