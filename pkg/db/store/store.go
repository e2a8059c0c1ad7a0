// Package store is the persistent Store component (§2.1, §3, §6): the only
// shared mutable state in the system (§5). Every job body and the
// Constraint Evaluator read and write through this interface; there is no
// process-wide global and no in-process cache that outlives a single job
// invocation.
package store

import (
	"context"
	"time"

	"github.com/w3f/1kv-core/pkg/db/models"
)

// Store is implemented by Postgres (pkg/db/store's concrete type). Every
// write is a single find-and-update on a stable key, per §5's "per-record
// coordination is optimistic" contract — callers never hold a lock across
// two Store calls.
type Store interface {
	// Candidates

	GetCandidate(ctx context.Context, stash string) (*models.Candidate, error)
	ListCandidates(ctx context.Context) ([]*models.Candidate, error)
	UpsertCandidate(ctx context.Context, c *models.Candidate) error

	SetInvalidity(ctx context.Context, stash string, typ models.InvalidityType, valid bool, details string) error
	SetValid(ctx context.Context, stash string, valid bool) error
	SetActive(ctx context.Context, stash string, active bool) error
	SetInclusion(ctx context.Context, stash string, inclusion, spanInclusion float64) error
	SetSessionKeys(ctx context.Context, stash string, queued, next string) error
	SetUnclaimedEras(ctx context.Context, stash string, eras []uint32) error
	SetValidatorPref(ctx context.Context, stash string, pref ValidatorPref) error
	ClearOfflineAccumulated(ctx context.Context) error
	SetRank(ctx context.Context, stash string, previousRank, rank int, when time.Time) error
	SetFaults(ctx context.Context, stash string, faults int, reason string, when time.Time) error
	SetExternalNominations(ctx context.Context, stash string, total uint64) error
	SetNominatedAt(ctx context.Context, stash string, at time.Time) error

	// Scores

	SetScore(ctx context.Context, score *models.ValidatorScore) error
	SetScoreMetadata(ctx context.Context, meta *models.ValidatorScoreMetadata) error

	// Era points

	GetEraPoints(ctx context.Context, era uint32, address string) (*models.EraPoints, error)
	UpsertEraPoints(ctx context.Context, ep *models.EraPoints) (changed bool, err error)
	GetTotalEraPoints(ctx context.Context, era uint32) (*models.TotalEraPoints, error)
	UpsertTotalEraPoints(ctx context.Context, t *models.TotalEraPoints) error

	// Era stats

	UpsertEraStats(ctx context.Context, s *models.EraStats) error

	// Nominators / nominations

	ListNominators(ctx context.Context) ([]*models.Nominator, error)
	UpsertNominator(ctx context.Context, n *models.Nominator) error
	RemoveStaleNominators(ctx context.Context, keepAddresses []string) (removed []string, err error)

	GetNominationAt(ctx context.Context, address string, era uint32) (*models.Nomination, error)
	UpsertNomination(ctx context.Context, n *models.Nomination) error

	// Delayed transactions

	ListDelayedTx(ctx context.Context) ([]*models.DelayedTx, error)
	UpsertDelayedTx(ctx context.Context, tx *models.DelayedTx) error
	DeleteDelayedTx(ctx context.Context, number uint64, controller string) error

	// Releases

	LatestRelease(ctx context.Context) (*models.Release, error)
	UpsertRelease(ctx context.Context, r *models.Release) error

	// Chain metadata / era marker

	GetChainMetadata(ctx context.Context) (*models.ChainMetadata, error)
	SetChainMetadata(ctx context.Context, m *models.ChainMetadata) error

	GetLastNominatedEra(ctx context.Context) (uint32, error)
	SetLastNominatedEra(ctx context.Context, era uint32) error

	Close()
}

// ValidatorPref bundles the attributes the ValidatorPref job refreshes in
// one call (§4.2 table row).
type ValidatorPref struct {
	Identity          models.Identity
	Commission        float64
	Controller        string
	RewardDestination string
	Bonded            uint64
}
