package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/retry"
	"github.com/w3f/1kv-core/pkg/utils"
)

// Executor is implemented by both *pgxpool.Pool and pgx.Tx, letting store
// methods work identically inside or outside a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Client wraps a PostgreSQL connection pool. This is the persistent Store's
// only connection to the outside world — the single shared-state resource
// referenced by §5 of the spec.
type Client struct {
	Logger *zap.Logger
	Pool   *pgxpool.Pool
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns sane pool sizing for a single long-lived process
// driving a cron-scheduled job catalog (modest write volume, bursty reads
// during fan-out).
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MinConns:        2,
		MaxConns:        16,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// New opens and pings a connection pool, retrying with backoff since store
// unavailability at boot is a fatal-startup condition the caller is expected
// to escalate (§7).
func New(ctx context.Context, logger *zap.Logger, dbURL string, poolConfig ...PoolConfig) (Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	client := Client{Logger: logger}

	if dbURL == "" {
		dbURL = utils.Env("POSTGRES_URL", "postgres://localhost:5432/postgres")
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Client{}, fmt.Errorf("parse postgres url: %w", err)
	}

	poolConf := DefaultPoolConfig()
	if len(poolConfig) > 0 {
		poolConf = poolConfig[0]
	}
	config.MinConns = poolConf.MinConns
	config.MaxConns = poolConf.MaxConns
	config.MaxConnLifetime = poolConf.ConnMaxLifetime
	config.MaxConnIdleTime = poolConf.ConnMaxIdleTime

	retryErr := retry.WithBackoff(connCtx, retry.DefaultConfig(), logger, "postgres_connection", func() error {
		pool, openErr := pgxpool.NewWithConfig(connCtx, config)
		if openErr != nil {
			return fmt.Errorf("create postgres connection pool: %w", openErr)
		}

		if pingErr := pool.Ping(connCtx); pingErr != nil {
			pool.Close()
			return fmt.Errorf("ping postgres: %w", pingErr)
		}

		client.Pool = pool
		logger.Info("postgres connection pool configured",
			zap.Int32("min_conns", poolConf.MinConns),
			zap.Int32("max_conns", poolConf.MaxConns),
		)
		return nil
	})
	if retryErr != nil {
		return Client{}, retryErr
	}

	return client, nil
}

// Exec executes a query without returning rows.
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.GetExecutor(ctx).Exec(ctx, query, args...)
	return err
}

// Query executes a query that returns rows. Caller must call rows.Close().
func (c *Client) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return c.GetExecutor(ctx).Query(ctx, query, args...)
}

// QueryRow executes a query expected to return at most one row.
func (c *Client) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return c.GetExecutor(ctx).QueryRow(ctx, query, args...)
}

// BeginFunc runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (c *Client) BeginFunc(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, c.Pool, fn)
}

// Close closes the connection pool.
func (c *Client) Close() {
	c.Pool.Close()
}

type ctxKey string

const txKey ctxKey = "pgx_tx"

// WithTx embeds tx in ctx so downstream store calls run against the
// transaction instead of the pool.
func (c *Client) WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetExecutor returns the transaction embedded in ctx, or the pool.
func (c *Client) GetExecutor(ctx context.Context) Executor {
	if tx, ok := ctx.Value(txKey).(pgx.Tx); ok {
		return tx
	}
	return c.Pool
}

// TableExists reports whether table exists in the public schema.
func (c *Client) TableExists(ctx context.Context, table string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`
	var exists bool
	if err := c.Pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("check table exists %s: %w", table, err)
	}
	return exists, nil
}

// IsNoRows reports whether err is pgx's "no rows" sentinel — the "missing
// record" case in §7, which callers must treat as a no-op, not an error.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
