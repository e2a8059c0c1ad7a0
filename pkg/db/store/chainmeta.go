package store

import (
	"context"

	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/db/postgres"
)

// GetChainMetadata returns the singleton chain descriptor, or a
// postgres.IsNoRows error if it has never been set.
func (s *PostgresStore) GetChainMetadata(ctx context.Context) (*models.ChainMetadata, error) {
	row := s.db.QueryRow(ctx, `SELECT name, decimals FROM chain_metadata WHERE id = 1`)
	var m models.ChainMetadata
	if err := row.Scan(&m.Name, &m.Decimals); err != nil {
		return nil, err
	}
	return &m, nil
}

// SetChainMetadata writes the singleton chain descriptor. Unlike every other
// setter it is insert-only-if-absent: once a row exists, later calls leave it
// unchanged.
func (s *PostgresStore) SetChainMetadata(ctx context.Context, m *models.ChainMetadata) error {
	const query = `
		INSERT INTO chain_metadata (id, name, decimals) VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	return s.db.Exec(ctx, query, m.Name, m.Decimals)
}

// GetLastNominatedEra returns the era index of the most recent nomination
// issuance, defaulting to 0 if none has ever occurred.
func (s *PostgresStore) GetLastNominatedEra(ctx context.Context) (uint32, error) {
	row := s.db.QueryRow(ctx, `SELECT last_nominated_era_index FROM era_marker WHERE id = 1`)
	var era uint32
	if err := row.Scan(&era); err != nil {
		if postgres.IsNoRows(err) {
			return 0, nil
		}
		return 0, err
	}
	return era, nil
}

// SetLastNominatedEra upserts the singleton last-nominated-era marker. No job
// in this module calls it.
func (s *PostgresStore) SetLastNominatedEra(ctx context.Context, era uint32) error {
	const query = `
		INSERT INTO era_marker (id, last_nominated_era_index) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_nominated_era_index = EXCLUDED.last_nominated_era_index
	`
	return s.db.Exec(ctx, query, era)
}
