package constraints

import (
	"math/rand"
	"sort"
	"time"

	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/models"
)

// componentValues bundles the raw, not-yet-rescaled component values read
// off a single candidate for scoring (§4.3).
type componentValues struct {
	bonded         float64
	faults         float64
	inclusion      float64
	spanInclusion  float64
	discovered     float64
	nominated      float64
	offline        float64
	rank           float64
	extNominations float64
	unclaimed      float64
}

func componentsFor(c *models.Candidate, now time.Time) componentValues {
	return componentValues{
		bonded:         float64(c.Bonded),
		faults:         float64(c.Faults),
		inclusion:      c.Inclusion,
		spanInclusion:  c.SpanInclusion,
		discovered:     now.Sub(c.DiscoveredAt).Seconds(),
		nominated:      now.Sub(c.NominatedAt).Seconds(),
		offline:        float64(c.OfflineAccumulated),
		rank:           float64(c.Rank),
		extNominations: float64(c.ExtNominations),
		unclaimed:      float64(len(c.UnclaimedEras)),
	}
}

// median returns the middle element of sorted ascending input (mean of the
// two middle elements on even length). Callers must guard against an empty
// slice (§4.3, §8) — median panics rather than silently returning 0, since a
// silent 0 would be indistinguishable from a real score of zero.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		panic("constraints: median of empty input")
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stat(values []float64) models.ScoreComponentStat {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return models.ScoreComponentStat{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean(sorted),
		Median: median(sorted),
	}
}

// rescale maps value into [0, 1] against stat's min/max. When lowerIsBetter
// is true the result is inverted (1 - x) so every rescaled component is
// "higher is better" before weighting. A population with zero variance
// (min == max) rescales every value to 1, avoiding a division by zero
// (§8 boundary behavior).
func rescale(value float64, st models.ScoreComponentStat, lowerIsBetter bool) float64 {
	if st.Max == st.Min {
		return 1
	}
	x := (value - st.Min) / (st.Max - st.Min)
	if lowerIsBetter {
		return 1 - x
	}
	return x
}

// ScoreAllCandidates computes per-component statistics over the valid
// subset of candidates and a weighted aggregate score for each, returning
// both for the caller to persist (§4.3). Candidates with c.Valid == false are
// excluded entirely —
// their ValidatorScore rows are left as whatever was last written, since the
// spec does not call for clearing them.
func ScoreAllCandidates(deps Deps, candidates []*models.Candidate, weights config.ScoreWeights) ([]*models.ValidatorScore, *models.ValidatorScoreMetadata, error) {
	valid := make([]*models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Valid {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return nil, nil, nil
	}

	raw := make([]componentValues, len(valid))
	bonded := make([]float64, len(valid))
	faults := make([]float64, len(valid))
	inclusion := make([]float64, len(valid))
	spanInclusion := make([]float64, len(valid))
	discovered := make([]float64, len(valid))
	nominated := make([]float64, len(valid))
	offline := make([]float64, len(valid))
	rank := make([]float64, len(valid))
	extNominations := make([]float64, len(valid))
	unclaimed := make([]float64, len(valid))

	for i, c := range valid {
		cv := componentsFor(c, deps.Now)
		raw[i] = cv
		bonded[i] = cv.bonded
		faults[i] = cv.faults
		inclusion[i] = cv.inclusion
		spanInclusion[i] = cv.spanInclusion
		discovered[i] = cv.discovered
		nominated[i] = cv.nominated
		offline[i] = cv.offline
		rank[i] = cv.rank
		extNominations[i] = cv.extNominations
		unclaimed[i] = cv.unclaimed
	}

	meta := &models.ValidatorScoreMetadata{
		Inclusion:      stat(inclusion),
		SpanInclusion:  stat(spanInclusion),
		Discovered:     stat(discovered),
		Nominated:      stat(nominated),
		Rank:           stat(rank),
		Unclaimed:      stat(unclaimed),
		Bonded:         stat(bonded),
		Faults:         stat(faults),
		Offline:        stat(offline),
		ExtNominations: stat(extNominations),
		Weights: models.ScoreWeights{
			Inclusion: weights.Inclusion, SpanInclusion: weights.SpanInclusion,
			Discovered: weights.Discovered, Nominated: weights.Nominated,
			Rank: weights.Rank, Unclaimed: weights.Unclaimed, Bonded: weights.Bonded,
			Faults: weights.Faults, Offline: weights.Offline,
			ExtNominations: weights.ExtNominations, Randomness: weights.Randomness,
		},
	}

	scores := make([]*models.ValidatorScore, len(valid))
	for i, c := range valid {
		cv := raw[i]

		s := &models.ValidatorScore{
			Stash:          c.Stash,
			Inclusion:      rescale(cv.inclusion, meta.Inclusion, false) * weights.Inclusion,
			SpanInclusion:  rescale(cv.spanInclusion, meta.SpanInclusion, false) * weights.SpanInclusion,
			Discovered:     rescale(cv.discovered, meta.Discovered, false) * weights.Discovered,
			Nominated:      rescale(cv.nominated, meta.Nominated, true) * weights.Nominated,
			Rank:           rescale(cv.rank, meta.Rank, true) * weights.Rank,
			Unclaimed:      rescale(cv.unclaimed, meta.Unclaimed, true) * weights.Unclaimed,
			Bonded:         rescale(cv.bonded, meta.Bonded, false) * weights.Bonded,
			Faults:         rescale(cv.faults, meta.Faults, true) * weights.Faults,
			Offline:        rescale(cv.offline, meta.Offline, true) * weights.Offline,
			ExtNominations: rescale(cv.extNominations, meta.ExtNominations, false) * weights.ExtNominations,
			Randomness:     rand.Float64() * weights.Randomness,
		}
		s.Aggregate = s.Inclusion + s.SpanInclusion + s.Discovered + s.Nominated + s.Rank +
			s.Unclaimed + s.Bonded + s.Faults + s.Offline + s.ExtNominations
		s.Total = s.Aggregate + s.Randomness
		scores[i] = s
	}

	return scores, meta, nil
}

// dockPoints and forgiveDockedPoints are opaque arithmetic preserved
// verbatim as program policy (DESIGN NOTES §9) — not "fixed" to a more
// principled formula.
func dockPoints(rank int) int {
	return rank*2 + 1
}

func forgiveDockedPoints(rank int) int {
	return rank - rank/6
}

// AdjustFaultsForRankChange applies dockPoints/forgiveDockedPoints to
// faults when a candidate's rank moves between two Score ticks: a worse
// (higher) rank docks points at the new rank, a better (lower) rank forgives
// points earned at the old one. Faults never go negative.
func AdjustFaultsForRankChange(faults, prevRank, newRank int) int {
	switch {
	case newRank > prevRank:
		faults += dockPoints(newRank)
	case newRank < prevRank:
		faults -= forgiveDockedPoints(prevRank)
	}
	if faults < 0 {
		faults = 0
	}
	return faults
}
