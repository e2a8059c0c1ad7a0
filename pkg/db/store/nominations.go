package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// GetNominationAt returns the (address, era) nomination, or a
// postgres.IsNoRows error if none has been recorded yet.
func (s *PostgresStore) GetNominationAt(ctx context.Context, address string, era uint32) (*models.Nomination, error) {
	row := s.db.QueryRow(ctx, `
		SELECT address, era, validators, bonded, block_hash, timestamp
		FROM nominations WHERE address = $1 AND era = $2
	`, address, era)

	var n models.Nomination
	var validatorsRaw []byte
	if err := row.Scan(&n.Address, &n.Era, &validatorsRaw, &n.Bonded, &n.BlockHash, &n.Timestamp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(validatorsRaw, &n.Validators); err != nil {
		return nil, fmt.Errorf("unmarshal validators: %w", err)
	}
	return &n, nil
}

// UpsertNomination writes n. Per §3/§8, once a row's block_hash is set the
// row is logically immutable; the WHERE guard refuses every overwrite of a
// row whose block_hash is already set. No job in this module calls it.
func (s *PostgresStore) UpsertNomination(ctx context.Context, n *models.Nomination) error {
	validatorsRaw, err := json.Marshal(nonNilStrings(n.Validators))
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO nominations (address, era, validators, bonded, block_hash, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (address, era) DO UPDATE SET
			validators = EXCLUDED.validators,
			bonded = EXCLUDED.bonded,
			block_hash = EXCLUDED.block_hash,
			timestamp = EXCLUDED.timestamp
		WHERE nominations.block_hash = ''
	`
	return s.db.Exec(ctx, query, n.Address, n.Era, validatorsRaw, n.Bonded, n.BlockHash, n.Timestamp)
}
