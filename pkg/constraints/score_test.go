package constraints

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/models"
)

// Concrete scenario 6: median of an odd-length and even-length slice, plus
// the documented panic on empty input.
func TestMedian(t *testing.T) {
	require.Equal(t, 4.0, median([]float64{1, 3, 5, 7}))
	require.Equal(t, 4.0, median([]float64{2, 4, 9})) // middle element of a 3-element slice, not the mean
	require.Panics(t, func() { median(nil) })
}

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, mean(nil))
	require.InDelta(t, 3.0, mean([]float64{1, 3, 5}), 1e-9)
}

// Boundary: a zero-variance population (every candidate has the same raw
// value for a component) must not divide by zero — every candidate rescales
// to 1 for that component.
func TestRescaleZeroVariance(t *testing.T) {
	st := models.ScoreComponentStat{Min: 10, Max: 10}
	require.Equal(t, 1.0, rescale(10, st, false))
	require.Equal(t, 1.0, rescale(10, st, true))
}

func TestRescaleInvertsLowerIsBetter(t *testing.T) {
	st := models.ScoreComponentStat{Min: 0, Max: 10}
	require.InDelta(t, 0.8, rescale(2, st, true), 1e-9)
	require.InDelta(t, 0.2, rescale(2, st, false), 1e-9)
}

// Boundary: a population of one must still produce a well-defined score —
// min==max for every component, so rescale's zero-variance guard fires
// throughout and nothing divides by zero.
func TestScoreAllCandidatesSingleCandidate(t *testing.T) {
	now := time.Now()
	candidate := &models.Candidate{Stash: "only", Valid: true, Bonded: 500, Inclusion: 0.9}

	scores, meta, err := ScoreAllCandidates(Deps{Now: now}, []*models.Candidate{candidate}, config.ScoreWeights{
		Inclusion: 10, Bonded: 10, SpanInclusion: 1, Discovered: 1, Nominated: 1,
		Rank: 1, Unclaimed: 1, Faults: 1, Offline: 1, ExtNominations: 1,
	})

	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.NotNil(t, meta)
	require.False(t, scores[0].Aggregate < 0)
}

func TestScoreAllCandidatesExcludesInvalid(t *testing.T) {
	valid := &models.Candidate{Stash: "valid", Valid: true}
	invalid := &models.Candidate{Stash: "invalid", Valid: false}

	scores, _, err := ScoreAllCandidates(Deps{Now: time.Now()}, []*models.Candidate{valid, invalid}, config.ScoreWeights{})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, "valid", scores[0].Stash)
}

func TestScoreAllCandidatesEmptyValidSet(t *testing.T) {
	scores, meta, err := ScoreAllCandidates(Deps{Now: time.Now()}, nil, config.ScoreWeights{})
	require.NoError(t, err)
	require.Nil(t, scores)
	require.Nil(t, meta)
}

// AdjustFaultsForRankChange: a worse rank docks points, a better rank
// forgives them, and the result is floored at zero (opaque arithmetic
// preserved verbatim; this pins the invocation contract around it).
func TestAdjustFaultsForRankChange(t *testing.T) {
	require.Equal(t, 0, AdjustFaultsForRankChange(0, 5, 5), "unchanged rank leaves faults untouched")

	docked := AdjustFaultsForRankChange(0, 5, 10)
	require.Equal(t, dockPoints(10), docked)

	forgiven := AdjustFaultsForRankChange(docked, 10, 5)
	require.GreaterOrEqual(t, forgiven, 0)

	require.Equal(t, 0, AdjustFaultsForRankChange(0, 10, 1), "faults never go negative")
}
