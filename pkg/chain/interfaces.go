// Package chain abstracts the remote collaborator that every job body reads
// chain state through. The concrete RPC/telemetry socket client and the
// transaction signer are out of scope for this module; only the interface
// boundary, an HTTP implementation, and a Fake for local development are
// built here.
package chain

import "context"

// QueuedAndNextKeys is a candidate's session keys as reported on-chain.
type QueuedAndNextKeys struct {
	Queued string
	Next   string
}

// ValidatorPref is the subset of on-chain preferences the ValidatorPref job
// refreshes per candidate.
type ValidatorPref struct {
	Commission        float64
	BlockedNominations bool
}

// ProxyAnnouncement is a single pending proxy-delegation announcement that
// would let the program act on a nominator's behalf (§6).
type ProxyAnnouncement struct {
	Real   string
	Delay  uint64
	Height uint64
}

// NominatorInfo is what currentValidators/getAllNominatorsMap need about one
// staking account: its targets and bonded amount.
type NominatorInfo struct {
	Targets []string
	Bonded  uint64
}

// Client captures the chain reads every job body needs (§4.2's "Reads"
// columns) plus the accessors the Execution/RewardClaim jobs use to decide
// what to submit. Implementations never sign or submit anything themselves —
// that collaborator is reached through the separate Nominator/Claimer
// interfaces in pkg/jobs, which this package does not define.
type Client interface {
	GetActiveEraIndex(ctx context.Context) (uint32, error)
	GetCurrentEra(ctx context.Context) (uint32, error)
	GetLatestBlock(ctx context.Context) (height uint64, hash string, err error)

	GetTotalEraPoints(ctx context.Context, era uint32) (total uint64, perValidator map[string]uint64, err error)

	CurrentValidators(ctx context.Context) ([]string, error)

	GetFormattedIdentity(ctx context.Context, stash string) (name string, sub string, verified bool, err error)
	GetCommission(ctx context.Context, stash string) (float64, error)
	GetControllerFromStash(ctx context.Context, stash string) (string, error)
	GetRewardDestination(ctx context.Context, stash string) (string, error)
	GetBondedAmount(ctx context.Context, stash string) (uint64, error)
	GetUnclaimedEras(ctx context.Context, stash string) ([]uint32, error)
	GetQueuedKeys(ctx context.Context, stash string) (string, error)
	GetNextKeys(ctx context.Context, stash string) (string, error)
	GetValidatorPref(ctx context.Context, stash string) (ValidatorPref, error)

	GetProxyAnnouncements(ctx context.Context, real string) ([]ProxyAnnouncement, error)
	GetNominationAt(ctx context.Context, address string, era uint32) (targets []string, bonded uint64, err error)
	GetAllNominatorsMap(ctx context.Context) (map[string]NominatorInfo, error)
	GetBalance(ctx context.Context, address string) (uint64, error)

	Close() error
}

// Factory produces chain clients for a given set of RPC endpoints. Mirrors
// the controller's Provider/Factory split so App wiring can swap HTTP for
// Fake without touching job code.
type Factory interface {
	NewClient(endpoints []string) Client
}
