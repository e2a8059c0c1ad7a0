package store

import (
	"context"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// UpsertEraStats writes the per-era population snapshot the EraStats job
// produces once per era (§3, §4.2).
func (s *PostgresStore) UpsertEraStats(ctx context.Context, st *models.EraStats) error {
	const query = `
		INSERT INTO era_stats (era, "when", total_nodes, valid, active)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (era) DO UPDATE SET
			"when" = EXCLUDED."when",
			total_nodes = EXCLUDED.total_nodes,
			valid = EXCLUDED.valid,
			active = EXCLUDED.active
	`
	return s.db.Exec(ctx, query, st.Era, st.When, st.TotalNodes, st.Valid, st.Active)
}
