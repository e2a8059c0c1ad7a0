package constraints

import (
	"context"
	"errors"
	"time"

	"github.com/w3f/1kv-core/pkg/db/models"
	"github.com/w3f/1kv-core/pkg/db/store"
)

// fakeConstraintsStore is a minimal store.Store for exercising the
// Constraint Evaluator directly, without pulling in the full in-memory store
// pkg/jobs' tests use. Only candidate reads/writes are backed by real state;
// everything else exists solely so the type satisfies store.Store.
type fakeConstraintsStore struct {
	candidates map[string]*models.Candidate
}

func newFakeConstraintsStore() *fakeConstraintsStore {
	return &fakeConstraintsStore{candidates: map[string]*models.Candidate{}}
}

var errConstraintsNotFound = errors.New("fakeConstraintsStore: not found")

func (s *fakeConstraintsStore) GetCandidate(_ context.Context, stash string) (*models.Candidate, error) {
	c, ok := s.candidates[stash]
	if !ok {
		return nil, errConstraintsNotFound
	}
	return c, nil
}

func (s *fakeConstraintsStore) ListCandidates(_ context.Context) ([]*models.Candidate, error) {
	out := make([]*models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeConstraintsStore) UpsertCandidate(_ context.Context, c *models.Candidate) error {
	s.candidates[c.Stash] = c
	return nil
}

func (s *fakeConstraintsStore) SetInvalidity(_ context.Context, stash string, typ models.InvalidityType, valid bool, details string) error {
	c, ok := s.candidates[stash]
	if !ok {
		return nil
	}
	if c.Invalidity == nil {
		c.Invalidity = models.InvalidityMap{}
	}
	c.Invalidity.Set(typ, valid, time.Now(), details)
	return nil
}

func (s *fakeConstraintsStore) SetValid(_ context.Context, stash string, valid bool) error {
	if c, ok := s.candidates[stash]; ok {
		c.Valid = valid
	}
	return nil
}

func (s *fakeConstraintsStore) SetActive(_ context.Context, _ string, _ bool) error { return nil }
func (s *fakeConstraintsStore) SetInclusion(_ context.Context, _ string, _, _ float64) error {
	return nil
}
func (s *fakeConstraintsStore) SetSessionKeys(_ context.Context, _, _, _ string) error { return nil }
func (s *fakeConstraintsStore) SetUnclaimedEras(_ context.Context, _ string, _ []uint32) error {
	return nil
}
func (s *fakeConstraintsStore) SetValidatorPref(_ context.Context, _ string, _ store.ValidatorPref) error {
	return nil
}
func (s *fakeConstraintsStore) ClearOfflineAccumulated(_ context.Context) error { return nil }
func (s *fakeConstraintsStore) SetRank(_ context.Context, _ string, _, _ int, _ time.Time) error {
	return nil
}
func (s *fakeConstraintsStore) SetFaults(_ context.Context, _ string, _ int, _ string, _ time.Time) error {
	return nil
}
func (s *fakeConstraintsStore) SetExternalNominations(_ context.Context, _ string, _ uint64) error {
	return nil
}
func (s *fakeConstraintsStore) SetNominatedAt(_ context.Context, _ string, _ time.Time) error {
	return nil
}
func (s *fakeConstraintsStore) SetScore(_ context.Context, _ *models.ValidatorScore) error {
	return nil
}
func (s *fakeConstraintsStore) SetScoreMetadata(_ context.Context, _ *models.ValidatorScoreMetadata) error {
	return nil
}
func (s *fakeConstraintsStore) GetEraPoints(_ context.Context, _ uint32, _ string) (*models.EraPoints, error) {
	return nil, errConstraintsNotFound
}
func (s *fakeConstraintsStore) UpsertEraPoints(_ context.Context, _ *models.EraPoints) (bool, error) {
	return false, nil
}
func (s *fakeConstraintsStore) GetTotalEraPoints(_ context.Context, _ uint32) (*models.TotalEraPoints, error) {
	return nil, errConstraintsNotFound
}
func (s *fakeConstraintsStore) UpsertTotalEraPoints(_ context.Context, _ *models.TotalEraPoints) error {
	return nil
}
func (s *fakeConstraintsStore) UpsertEraStats(_ context.Context, _ *models.EraStats) error {
	return nil
}
func (s *fakeConstraintsStore) ListNominators(_ context.Context) ([]*models.Nominator, error) {
	return nil, nil
}
func (s *fakeConstraintsStore) UpsertNominator(_ context.Context, _ *models.Nominator) error {
	return nil
}
func (s *fakeConstraintsStore) RemoveStaleNominators(_ context.Context, _ []string) ([]string, error) {
	return nil, nil
}
func (s *fakeConstraintsStore) GetNominationAt(_ context.Context, _ string, _ uint32) (*models.Nomination, error) {
	return nil, errConstraintsNotFound
}
func (s *fakeConstraintsStore) UpsertNomination(_ context.Context, _ *models.Nomination) error {
	return nil
}
func (s *fakeConstraintsStore) ListDelayedTx(_ context.Context) ([]*models.DelayedTx, error) {
	return nil, nil
}
func (s *fakeConstraintsStore) UpsertDelayedTx(_ context.Context, _ *models.DelayedTx) error {
	return nil
}
func (s *fakeConstraintsStore) DeleteDelayedTx(_ context.Context, _ uint64, _ string) error {
	return nil
}
func (s *fakeConstraintsStore) LatestRelease(_ context.Context) (*models.Release, error) {
	return nil, errConstraintsNotFound
}
func (s *fakeConstraintsStore) UpsertRelease(_ context.Context, _ *models.Release) error {
	return nil
}
func (s *fakeConstraintsStore) GetChainMetadata(_ context.Context) (*models.ChainMetadata, error) {
	return nil, errConstraintsNotFound
}
func (s *fakeConstraintsStore) SetChainMetadata(_ context.Context, _ *models.ChainMetadata) error {
	return nil
}
func (s *fakeConstraintsStore) GetLastNominatedEra(_ context.Context) (uint32, error) {
	return 0, nil
}
func (s *fakeConstraintsStore) SetLastNominatedEra(_ context.Context, _ uint32) error { return nil }
func (s *fakeConstraintsStore) Close()                                               {}

var _ store.Store = (*fakeConstraintsStore)(nil)
