package store

import (
	"context"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// LatestRelease returns the most recently published release record known to
// the store, or a postgres.IsNoRows error if none has ever been recorded.
func (s *PostgresStore) LatestRelease(ctx context.Context) (*models.Release, error) {
	row := s.db.QueryRow(ctx, `SELECT name, published_at FROM releases ORDER BY published_at DESC LIMIT 1`)
	var r models.Release
	if err := row.Scan(&r.Name, &r.PublishedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertRelease records a release observed from the upstream release feed
// (§4.2's Monitor job, client_upgrade invalidity check).
func (s *PostgresStore) UpsertRelease(ctx context.Context, r *models.Release) error {
	const query = `
		INSERT INTO releases (name, published_at) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET published_at = EXCLUDED.published_at
	`
	return s.db.Exec(ctx, query, r.Name, r.PublishedAt)
}
