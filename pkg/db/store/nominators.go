package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/w3f/1kv-core/pkg/db/models"
)

func scanNominator(row pgx.Row) (*models.Nominator, error) {
	var n models.Nominator
	var currentRaw []byte
	if err := row.Scan(&n.Address, &n.Stash, &n.Proxy, &n.Bonded, &currentRaw, &n.LastNomination, &n.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(currentRaw, &n.Current); err != nil {
		return nil, fmt.Errorf("unmarshal current: %w", err)
	}
	return &n, nil
}

// ListNominators returns every controlled nominator account (§3, §6).
func (s *PostgresStore) ListNominators(ctx context.Context) ([]*models.Nominator, error) {
	rows, err := s.db.Query(ctx, `SELECT address, stash, proxy, bonded, current, last_nomination, created_at FROM nominators`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Nominator
	for rows.Next() {
		n, err := scanNominator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UpsertNominator inserts or overwrites a nominator record, keyed on address.
func (s *PostgresStore) UpsertNominator(ctx context.Context, n *models.Nominator) error {
	currentRaw, err := json.Marshal(nonNilStrings(n.Current))
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO nominators (address, stash, proxy, bonded, current, last_nomination, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (address) DO UPDATE SET
			stash = EXCLUDED.stash,
			proxy = EXCLUDED.proxy,
			bonded = EXCLUDED.bonded,
			current = EXCLUDED.current,
			last_nomination = EXCLUDED.last_nomination
	`
	return s.db.Exec(ctx, query, n.Address, n.Stash, n.Proxy, n.Bonded, currentRaw, n.LastNomination, n.CreatedAt)
}

// RemoveStaleNominators deletes every nominator whose address is not in
// keepAddresses (the Stale job passes the nominators known on chain) and returns
// the addresses removed, for the caller to log.
func (s *PostgresStore) RemoveStaleNominators(ctx context.Context, keepAddresses []string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		DELETE FROM nominators WHERE address != ALL($1)
		RETURNING address
	`, nonNilStrings(keepAddresses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var removed []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		removed = append(removed, addr)
	}
	return removed, rows.Err()
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
