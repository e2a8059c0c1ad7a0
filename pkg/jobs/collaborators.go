package jobs

import "context"

// Nominator is a controlled staking account capable of submitting
// transactions on the program's behalf (§6). Concrete implementations
// (transaction signing, submission) are outside this module's scope.
type Nominator interface {
	Stash() string
	Address() string
	Controller() string
	IsProxy() bool
	SendStakingTx(ctx context.Context, targets []string) (blockHash string, err error)
	CancelTx(ctx context.Context, announcementHeight uint64) error
}

// Claimer submits batched reward-claim transactions (§4.6, §6).
type Claimer interface {
	Claim(ctx context.Context, eras []EraStashPair) error
}

// EraStashPair names one unclaimed-reward era/stash combination to include
// in a batched claim.
type EraStashPair struct {
	Era   uint32
	Stash string
}

// Bot optionally delivers operator-facing notifications for action jobs
// (§6). A nil Bot is valid — jobs must treat notification delivery as
// best-effort.
type Bot interface {
	SendMessage(ctx context.Context, text string) error
}
