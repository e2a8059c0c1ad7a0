package models

import "time"

// InvalidityType is one member of the closed set of invalidity reasons a
// candidate can accumulate. The set is closed deliberately (§3): a candidate
// document holds at most one entry per type.
type InvalidityType string

const (
	InvalidityOnline              InvalidityType = "ONLINE"
	InvalidityValidateIntention   InvalidityType = "VALIDATE_INTENTION"
	InvalidityClientUpgrade       InvalidityType = "CLIENT_UPGRADE"
	InvalidityConnectionTime      InvalidityType = "CONNECTION_TIME"
	InvalidityIdentity            InvalidityType = "IDENTITY"
	InvalidityAccumulatedOffline  InvalidityType = "ACCUMULATED_OFFLINE_TIME"
	InvalidityRewardDestination   InvalidityType = "REWARD_DESTINATION"
	InvalidityCommission          InvalidityType = "COMMISION" // spelling preserved: program policy, not fixed (DESIGN NOTES §9)
	InvaliditySelfStake           InvalidityType = "SELF_STAKE"
	InvalidityUnclaimedRewards    InvalidityType = "UNCLAIMED_REWARDS"
	InvalidityBlocked             InvalidityType = "BLOCKED"
	InvalidityKusamaRank          InvalidityType = "KUSAMA_RANK"
)

// AllInvalidityTypes enumerates the closed set, in the order the Validity job
// evaluates them.
var AllInvalidityTypes = []InvalidityType{
	InvalidityOnline,
	InvalidityValidateIntention,
	InvalidityClientUpgrade,
	InvalidityConnectionTime,
	InvalidityIdentity,
	InvalidityAccumulatedOffline,
	InvalidityRewardDestination,
	InvalidityCommission,
	InvaliditySelfStake,
	InvalidityUnclaimedRewards,
	InvalidityBlocked,
	InvalidityKusamaRank,
}

// InvalidityEntry is one verdict within a candidate's invalidity map.
type InvalidityEntry struct {
	Type    InvalidityType `json:"type"`
	Valid   bool           `json:"valid"`
	Updated time.Time      `json:"updated"`
	Details string         `json:"details"`
}

// InvalidityMap is the per-candidate collection, keyed by type so "at most
// one entry per type" is structural rather than enforced by scan-and-replace
// (DESIGN NOTES §9).
type InvalidityMap map[InvalidityType]InvalidityEntry

// Valid is the conjunction of every current entry's Valid field. An empty map
// (no checks have ever run) is conservatively invalid.
func (m InvalidityMap) Valid() bool {
	if len(m) == 0 {
		return false
	}
	for _, e := range m {
		if !e.Valid {
			return false
		}
	}
	return true
}

// Set replaces the entry for typ, implementing the setter contract from
// §4.3: read, filter-by-type, append, write-back — expressed here as a
// single map assignment.
func (m InvalidityMap) Set(typ InvalidityType, valid bool, updated time.Time, details string) {
	m[typ] = InvalidityEntry{Type: typ, Valid: valid, Updated: updated, Details: details}
}

// Clone returns a deep copy, so callers can mutate a working copy before
// writing it back atomically.
func (m InvalidityMap) Clone() InvalidityMap {
	out := make(InvalidityMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// RankEvent is one append-only entry in a candidate's rank history.
type RankEvent struct {
	PreviousRank int       `json:"previousRank"`
	NewRank      int       `json:"newRank"`
	When         time.Time `json:"when"`
}

// FaultEvent is one append-only entry in a candidate's fault history.
type FaultEvent struct {
	PreviousFaults int       `json:"previousFaults"`
	NewFaults      int       `json:"newFaults"`
	Reason         string    `json:"reason"`
	When           time.Time `json:"when"`
}
