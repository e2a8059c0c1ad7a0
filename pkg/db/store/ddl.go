package store

import "context"

// ddlStatements creates every table the Store needs. All tables are keyed on
// the stable identifiers named in §3 (candidate stash, nominator address,
// era number); invalidity/events/collections are stored as jsonb so a
// single UPDATE can replace or append without a read-modify-write race
// across unrelated fields (§3 "Representation" supplement).
var ddlStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		stash               TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		secondary_stash     TEXT NOT NULL DEFAULT '',
		commission          DOUBLE PRECISION NOT NULL DEFAULT 0,
		controller          TEXT NOT NULL DEFAULT '',
		reward_destination  TEXT NOT NULL DEFAULT '',
		bonded              BIGINT NOT NULL DEFAULT 0,
		queued_keys         TEXT NOT NULL DEFAULT '',
		next_keys           TEXT NOT NULL DEFAULT '',
		identity            JSONB NOT NULL DEFAULT '{}',
		discovered_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		online_since        TIMESTAMPTZ,
		offline_since       TIMESTAMPTZ,
		offline_accumulated BIGINT NOT NULL DEFAULT 0,
		node_refs           INTEGER NOT NULL DEFAULT 0,
		version             TEXT NOT NULL DEFAULT '',
		telemetry_id        BIGINT NOT NULL DEFAULT 0,
		updated             BOOLEAN NOT NULL DEFAULT FALSE,
		nominated_at        TIMESTAMPTZ,
		active              BOOLEAN NOT NULL DEFAULT FALSE,
		valid               BOOLEAN NOT NULL DEFAULT FALSE,
		rank                INTEGER NOT NULL DEFAULT 0,
		faults              INTEGER NOT NULL DEFAULT 0,
		inclusion           DOUBLE PRECISION NOT NULL DEFAULT 0,
		span_inclusion      DOUBLE PRECISION NOT NULL DEFAULT 0,
		unclaimed_eras      JSONB NOT NULL DEFAULT '[]',
		invalidity          JSONB NOT NULL DEFAULT '{}',
		rank_events         JSONB NOT NULL DEFAULT '[]',
		fault_events        JSONB NOT NULL DEFAULT '[]',
		ext_nominations     BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS validator_scores (
		stash           TEXT PRIMARY KEY,
		inclusion       DOUBLE PRECISION NOT NULL DEFAULT 0,
		span_inclusion  DOUBLE PRECISION NOT NULL DEFAULT 0,
		discovered      DOUBLE PRECISION NOT NULL DEFAULT 0,
		nominated       DOUBLE PRECISION NOT NULL DEFAULT 0,
		rank            DOUBLE PRECISION NOT NULL DEFAULT 0,
		unclaimed       DOUBLE PRECISION NOT NULL DEFAULT 0,
		bonded          DOUBLE PRECISION NOT NULL DEFAULT 0,
		faults          DOUBLE PRECISION NOT NULL DEFAULT 0,
		offline         DOUBLE PRECISION NOT NULL DEFAULT 0,
		ext_nominations DOUBLE PRECISION NOT NULL DEFAULT 0,
		randomness      DOUBLE PRECISION NOT NULL DEFAULT 0,
		aggregate       DOUBLE PRECISION NOT NULL DEFAULT 0,
		total           DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS validator_score_metadata (
		id      SMALLINT PRIMARY KEY DEFAULT 1,
		payload JSONB NOT NULL,
		CONSTRAINT singleton CHECK (id = 1)
	)`,
	`CREATE TABLE IF NOT EXISTS era_points (
		era        INTEGER NOT NULL,
		address    TEXT NOT NULL,
		era_points BIGINT NOT NULL,
		PRIMARY KEY (era, address)
	)`,
	`CREATE TABLE IF NOT EXISTS total_era_points (
		era                   INTEGER PRIMARY KEY,
		total_era_points      BIGINT NOT NULL,
		validators_era_points JSONB NOT NULL DEFAULT '[]',
		median                DOUBLE PRECISION,
		average               DOUBLE PRECISION,
		max                   BIGINT,
		min                   BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS era_stats (
		era         INTEGER PRIMARY KEY,
		"when"      TIMESTAMPTZ NOT NULL DEFAULT now(),
		total_nodes INTEGER NOT NULL DEFAULT 0,
		valid       INTEGER NOT NULL DEFAULT 0,
		active      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS nominators (
		address         TEXT PRIMARY KEY,
		stash           TEXT NOT NULL DEFAULT '',
		proxy           TEXT NOT NULL DEFAULT '',
		bonded          BIGINT NOT NULL DEFAULT 0,
		current         JSONB NOT NULL DEFAULT '[]',
		last_nomination BIGINT NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS nominations (
		address    TEXT NOT NULL,
		era        INTEGER NOT NULL,
		validators JSONB NOT NULL DEFAULT '[]',
		bonded     BIGINT NOT NULL DEFAULT 0,
		block_hash TEXT NOT NULL DEFAULT '',
		timestamp  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (address, era)
	)`,
	`CREATE TABLE IF NOT EXISTS delayed_tx (
		number     BIGINT NOT NULL,
		controller TEXT NOT NULL,
		targets    JSONB NOT NULL DEFAULT '[]',
		call_hash  TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (number, controller)
	)`,
	`CREATE TABLE IF NOT EXISTS releases (
		name         TEXT PRIMARY KEY,
		published_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chain_metadata (
		id       SMALLINT PRIMARY KEY DEFAULT 1,
		name     TEXT NOT NULL DEFAULT '',
		decimals INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT singleton CHECK (id = 1)
	)`,
	`CREATE TABLE IF NOT EXISTS era_marker (
		id                       SMALLINT PRIMARY KEY DEFAULT 1,
		last_nominated_era_index INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT singleton CHECK (id = 1)
	)`,
}

// init creates every table if missing. Safe to call on every boot.
func (s *PostgresStore) init(ctx context.Context) error {
	for _, stmt := range ddlStatements {
		if err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
