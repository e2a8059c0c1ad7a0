package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/w3f/1kv-core/pkg/db/models"
)

const candidateColumns = `stash, name, secondary_stash, commission, controller, reward_destination,
	bonded, queued_keys, next_keys, identity, discovered_at, online_since, offline_since,
	offline_accumulated, node_refs, version, telemetry_id, updated, nominated_at, active, valid,
	rank, faults, inclusion, span_inclusion, unclaimed_eras, invalidity, rank_events, fault_events,
	ext_nominations`

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	var identityRaw, unclaimedRaw, invalidityRaw, rankEventsRaw, faultEventsRaw []byte
	var onlineSince, offlineSince, nominatedAt *time.Time

	err := row.Scan(
		&c.Stash, &c.Name, &c.SecondaryStash, &c.Commission, &c.Controller, &c.RewardDestination,
		&c.Bonded, &c.QueuedKeys, &c.NextKeys, &identityRaw, &c.DiscoveredAt, &onlineSince, &offlineSince,
		&c.OfflineAccumulated, &c.NodeRefs, &c.Version, &c.TelemetryID, &c.Updated, &nominatedAt, &c.Active, &c.Valid,
		&c.Rank, &c.Faults, &c.Inclusion, &c.SpanInclusion, &unclaimedRaw, &invalidityRaw, &rankEventsRaw, &faultEventsRaw,
		&c.ExtNominations,
	)
	if err != nil {
		return nil, err
	}

	if onlineSince != nil {
		c.OnlineSince = *onlineSince
	}
	if offlineSince != nil {
		c.OfflineSince = *offlineSince
	}
	if nominatedAt != nil {
		c.NominatedAt = *nominatedAt
	}
	if err := json.Unmarshal(identityRaw, &c.IdentityRecord); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	if err := json.Unmarshal(unclaimedRaw, &c.UnclaimedEras); err != nil {
		return nil, fmt.Errorf("unmarshal unclaimed eras: %w", err)
	}
	c.Invalidity = models.InvalidityMap{}
	if err := json.Unmarshal(invalidityRaw, &c.Invalidity); err != nil {
		return nil, fmt.Errorf("unmarshal invalidity: %w", err)
	}
	if err := json.Unmarshal(rankEventsRaw, &c.RankEvents); err != nil {
		return nil, fmt.Errorf("unmarshal rank events: %w", err)
	}
	if err := json.Unmarshal(faultEventsRaw, &c.FaultEvents); err != nil {
		return nil, fmt.Errorf("unmarshal fault events: %w", err)
	}
	return &c, nil
}

// GetCandidate returns the candidate for stash, or (nil, postgres.IsNoRows-
// satisfying error) if it does not exist. Callers implementing the "missing
// record" case in §7 must check postgres.IsNoRows and no-op rather than
// create a partial candidate.
func (s *PostgresStore) GetCandidate(ctx context.Context, stash string) (*models.Candidate, error) {
	row := s.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE stash = $1`, stash)
	return scanCandidate(row)
}

// ListCandidates returns every candidate, in no particular order.
func (s *PostgresStore) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	rows, err := s.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertCandidate inserts c or, if stash already exists, overwrites every
// column except discovered_at. Candidates are never deleted by the core (§3 lifecycles) — there is
// deliberately no DeleteCandidate.
func (s *PostgresStore) UpsertCandidate(ctx context.Context, c *models.Candidate) error {
	identityRaw, err := json.Marshal(c.IdentityRecord)
	if err != nil {
		return err
	}
	unclaimedRaw, err := json.Marshal(nonNilUint32(c.UnclaimedEras))
	if err != nil {
		return err
	}
	invalidity := c.Invalidity
	if invalidity == nil {
		invalidity = models.InvalidityMap{}
	}
	invalidityRaw, err := json.Marshal(invalidity)
	if err != nil {
		return err
	}
	rankEventsRaw, err := json.Marshal(nonNilRankEvents(c.RankEvents))
	if err != nil {
		return err
	}
	faultEventsRaw, err := json.Marshal(nonNilFaultEvents(c.FaultEvents))
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
		ON CONFLICT (stash) DO UPDATE SET
			name = EXCLUDED.name,
			secondary_stash = EXCLUDED.secondary_stash,
			commission = EXCLUDED.commission,
			controller = EXCLUDED.controller,
			reward_destination = EXCLUDED.reward_destination,
			bonded = EXCLUDED.bonded,
			queued_keys = EXCLUDED.queued_keys,
			next_keys = EXCLUDED.next_keys,
			identity = EXCLUDED.identity,
			online_since = EXCLUDED.online_since,
			offline_since = EXCLUDED.offline_since,
			offline_accumulated = EXCLUDED.offline_accumulated,
			node_refs = EXCLUDED.node_refs,
			version = EXCLUDED.version,
			telemetry_id = EXCLUDED.telemetry_id,
			updated = EXCLUDED.updated,
			nominated_at = EXCLUDED.nominated_at,
			active = EXCLUDED.active,
			valid = EXCLUDED.valid,
			rank = EXCLUDED.rank,
			faults = EXCLUDED.faults,
			inclusion = EXCLUDED.inclusion,
			span_inclusion = EXCLUDED.span_inclusion,
			unclaimed_eras = EXCLUDED.unclaimed_eras,
			invalidity = EXCLUDED.invalidity,
			rank_events = EXCLUDED.rank_events,
			fault_events = EXCLUDED.fault_events,
			ext_nominations = EXCLUDED.ext_nominations
	`
	return s.db.Exec(ctx, query,
		c.Stash, c.Name, c.SecondaryStash, c.Commission, c.Controller, c.RewardDestination,
		c.Bonded, c.QueuedKeys, c.NextKeys, identityRaw, c.DiscoveredAt, nullableTime(c.OnlineSince), nullableTime(c.OfflineSince),
		c.OfflineAccumulated, c.NodeRefs, c.Version, c.TelemetryID, c.Updated, nullableTime(c.NominatedAt), c.Active, c.Valid,
		c.Rank, c.Faults, c.Inclusion, c.SpanInclusion, unclaimedRaw, invalidityRaw, rankEventsRaw, faultEventsRaw,
		c.ExtNominations,
	)
}

// SetInvalidity is the per-candidate invalidity setter from §4.3: a single
// jsonb_set call that replaces the entry for typ without touching entries
// for other types, strengthening the "at most one per type" invariant into
// a structural one even under concurrent setters for different types.
func (s *PostgresStore) SetInvalidity(ctx context.Context, stash string, typ models.InvalidityType, valid bool, details string) error {
	entry := models.InvalidityEntry{Type: typ, Valid: valid, Updated: time.Now(), Details: details}
	entryRaw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	const query = `
		UPDATE candidates
		SET invalidity = jsonb_set(invalidity, ARRAY[$2::text], $3::jsonb, true)
		WHERE stash = $1
	`
	return s.db.Exec(ctx, query, stash, string(typ), entryRaw)
}

// SetValid overwrites the overall valid flag — the conjunction the Validity
// job computes once every invalidity type has been (re-)evaluated (§4.3).
func (s *PostgresStore) SetValid(ctx context.Context, stash string, valid bool) error {
	return s.db.Exec(ctx, `UPDATE candidates SET valid = $2 WHERE stash = $1`, stash, valid)
}

func (s *PostgresStore) SetActive(ctx context.Context, stash string, active bool) error {
	return s.db.Exec(ctx, `UPDATE candidates SET active = $2 WHERE stash = $1`, stash, active)
}

func (s *PostgresStore) SetInclusion(ctx context.Context, stash string, inclusion, spanInclusion float64) error {
	return s.db.Exec(ctx, `UPDATE candidates SET inclusion = $2, span_inclusion = $3 WHERE stash = $1`, stash, inclusion, spanInclusion)
}

func (s *PostgresStore) SetSessionKeys(ctx context.Context, stash string, queued, next string) error {
	return s.db.Exec(ctx, `UPDATE candidates SET queued_keys = $2, next_keys = $3 WHERE stash = $1`, stash, queued, next)
}

func (s *PostgresStore) SetUnclaimedEras(ctx context.Context, stash string, eras []uint32) error {
	raw, err := json.Marshal(nonNilUint32(eras))
	if err != nil {
		return err
	}
	return s.db.Exec(ctx, `UPDATE candidates SET unclaimed_eras = $2 WHERE stash = $1`, stash, raw)
}

func (s *PostgresStore) SetValidatorPref(ctx context.Context, stash string, pref ValidatorPref) error {
	identityRaw, err := json.Marshal(pref.Identity)
	if err != nil {
		return err
	}
	const query = `
		UPDATE candidates
		SET identity = $2, commission = $3, controller = $4, reward_destination = $5, bonded = $6
		WHERE stash = $1
	`
	return s.db.Exec(ctx, query, stash, identityRaw, pref.Commission, pref.Controller, pref.RewardDestination, pref.Bonded)
}

// ClearOfflineAccumulated zeroes offlineAccumulated for every candidate —
// the ClearOffline job body, run on a weekly cron by default (§4.2, §8).
func (s *PostgresStore) ClearOfflineAccumulated(ctx context.Context) error {
	return s.db.Exec(ctx, `UPDATE candidates SET offline_accumulated = 0`)
}

// SetRank updates rank and appends a RankEvent in one statement. previousRank
// is supplied by the caller (the Score job already read the prior value),
// matching §5's "no in-process caches" rule by not re-reading before writing.
func (s *PostgresStore) SetRank(ctx context.Context, stash string, previousRank, rank int, when time.Time) error {
	event := models.RankEvent{PreviousRank: previousRank, NewRank: rank, When: when}
	eventRaw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	const query = `
		UPDATE candidates
		SET rank = $2, rank_events = rank_events || $3::jsonb
		WHERE stash = $1
	`
	return s.db.Exec(ctx, query, stash, rank, eventRaw)
}

func (s *PostgresStore) SetFaults(ctx context.Context, stash string, faults int, reason string, when time.Time) error {
	event := models.FaultEvent{NewFaults: faults, Reason: reason, When: when}
	eventRaw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	const query = `
		UPDATE candidates
		SET faults = $2, fault_events = fault_events || $3::jsonb
		WHERE stash = $1
	`
	return s.db.Exec(ctx, query, stash, faults, eventRaw)
}

// SetExternalNominations is defined per the Job Catalog's "(planned)" column
// for ExtNominations, but — per the open question preserved from the source
// (DESIGN NOTES §9) — is never actually called from jobs.ExtNominations.
// It exists so the rest of the Store contract is complete and so a future
// version can wire it without an interface change.
func (s *PostgresStore) SetExternalNominations(ctx context.Context, stash string, total uint64) error {
	return s.db.Exec(ctx, `UPDATE candidates SET ext_nominations = $2 WHERE stash = $1`, stash, total)
}

func (s *PostgresStore) SetNominatedAt(ctx context.Context, stash string, at time.Time) error {
	return s.db.Exec(ctx, `UPDATE candidates SET nominated_at = $2 WHERE stash = $1`, stash, at)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNilUint32(v []uint32) []uint32 {
	if v == nil {
		return []uint32{}
	}
	return v
}

func nonNilRankEvents(v []models.RankEvent) []models.RankEvent {
	if v == nil {
		return []models.RankEvent{}
	}
	return v
}

func nonNilFaultEvents(v []models.FaultEvent) []models.FaultEvent {
	if v == nil {
		return []models.FaultEvent{}
	}
	return v
}
