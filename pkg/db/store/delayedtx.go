package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/w3f/1kv-core/pkg/db/models"
)

func scanDelayedTx(row pgx.Row) (*models.DelayedTx, error) {
	var tx models.DelayedTx
	var targetsRaw []byte
	if err := row.Scan(&tx.Number, &tx.Controller, &targetsRaw, &tx.CallHash); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(targetsRaw, &tx.Targets); err != nil {
		return nil, fmt.Errorf("unmarshal targets: %w", err)
	}
	return &tx, nil
}

// ListDelayedTx returns every pending delayed-execution intent (§3, §4.5's
// "delay" design note — an intent is recorded at decision time and replayed
// once the delay window elapses).
func (s *PostgresStore) ListDelayedTx(ctx context.Context) ([]*models.DelayedTx, error) {
	rows, err := s.db.Query(ctx, `SELECT number, controller, targets, call_hash FROM delayed_tx`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.DelayedTx
	for rows.Next() {
		tx, err := scanDelayedTx(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// UpsertDelayedTx records or overwrites a delayed-execution intent, keyed on
// (number, controller).
func (s *PostgresStore) UpsertDelayedTx(ctx context.Context, tx *models.DelayedTx) error {
	targetsRaw, err := json.Marshal(nonNilStrings(tx.Targets))
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO delayed_tx (number, controller, targets, call_hash)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (number, controller) DO UPDATE SET
			targets = EXCLUDED.targets,
			call_hash = EXCLUDED.call_hash
	`
	return s.db.Exec(ctx, query, tx.Number, tx.Controller, targetsRaw, tx.CallHash)
}

// DeleteDelayedTx removes the intent once the Execution job has replayed it
// (§4.5).
func (s *PostgresStore) DeleteDelayedTx(ctx context.Context, number uint64, controller string) error {
	return s.db.Exec(ctx, `DELETE FROM delayed_tx WHERE number = $1 AND controller = $2`, number, controller)
}
