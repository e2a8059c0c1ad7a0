package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/db/postgres"
)

// PostgresStore is the Store's only concrete implementation. Generalizes
// pkg/db/postgres.Client the same way the teacher's per-component store
// packages (pkg/db/postgres/admin, .../chain) wrap it, but collapsed to a
// single schema since the whole data model in §3 is one cohesive document
// space, not a multi-tenant per-chain split.
type PostgresStore struct {
	db     *postgres.Client
	logger *zap.Logger
}

// New opens a connection pool, ensures the schema exists, and returns a
// ready Store. A failure here is the "fatal startup" case in §7 — callers
// are expected to escalate to logger.Fatal / process exit.
func New(ctx context.Context, logger *zap.Logger, dbURL string) (*PostgresStore, error) {
	client, err := postgres.New(ctx, logger, dbURL)
	if err != nil {
		return nil, err
	}

	s := &PostgresStore{db: &client, logger: logger}
	if err := s.init(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}
