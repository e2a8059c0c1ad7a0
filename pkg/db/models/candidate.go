package models

import "time"

// Identity mirrors the on-chain identity record: a display name, a
// sub-identity, and whether it has passed the registrar's verification.
type Identity struct {
	Name     string `json:"name"`
	Sub      string `json:"sub"`
	Verified bool   `json:"verified"`
}

// Candidate is a validator enrolled in the program under evaluation (§3).
// Every field the Job Catalog writes has a single owning job.
type Candidate struct {
	// Identity
	Name            string `json:"name"`
	Stash           string `json:"stash"` // canonicalized to the chain's SS58 prefix
	SecondaryStash  string `json:"secondaryStash,omitempty"`

	// Derived validator attributes (ValidatorPref job)
	Commission       float64  `json:"commission"` // percent, scaled from parts-per-billion
	Controller       string   `json:"controller"`
	RewardDestination string  `json:"rewardDestination"`
	Bonded           uint64   `json:"bonded"`
	QueuedKeys       string   `json:"queuedKeys,omitempty"`
	NextKeys         string   `json:"nextKeys,omitempty"`
	IdentityRecord   Identity `json:"identity"`

	// Operational
	DiscoveredAt       time.Time `json:"discoveredAt"`
	OnlineSince        time.Time `json:"onlineSince"`
	OfflineSince       time.Time `json:"offlineSince"`
	OfflineAccumulated int64     `json:"offlineAccumulated"` // milliseconds
	NodeRefs           int       `json:"nodeRefs"`
	Version            string    `json:"version"`
	TelemetryID        int64     `json:"telemetryId"`
	Updated            bool      `json:"updated"` // running latest release
	NominatedAt        time.Time `json:"nominatedAt"`

	// Evaluation
	Active        bool          `json:"active"`
	Valid         bool          `json:"valid"`
	Rank          int           `json:"rank"`
	Faults        int           `json:"faults"`
	Inclusion     float64       `json:"inclusion"`     // fraction, last 84 eras
	SpanInclusion float64       `json:"spanInclusion"` // fraction, last 28 eras
	UnclaimedEras []uint32      `json:"unclaimedEras"`
	Invalidity    InvalidityMap `json:"invalidity"`
	RankEvents    []RankEvent   `json:"rankEvents"`
	FaultEvents   []FaultEvent  `json:"faultEvents"`

	// ExtNominations is computed by the ExtNominations job but, per the open
	// question preserved from the source (DESIGN NOTES §9), never persisted
	// back onto the candidate from the job body itself. It is included here
	// so Score's statistics can read it once something else populates it.
	ExtNominations uint64 `json:"extNominations"`
}

// NewCandidate returns a Candidate ready for first telemetry sighting /
// config ingestion, with an empty invalidity map (conservatively invalid
// until Validity runs at least once).
func NewCandidate(name, stash string) *Candidate {
	return &Candidate{
		Name:       name,
		Stash:      stash,
		Invalidity: InvalidityMap{},
	}
}
