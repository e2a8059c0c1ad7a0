package chain

import (
	"context"
	"sync"
)

// FakeClient is an in-memory Client for tests and for cmd/validator's demo
// wiring, mirroring the controller's FakeProvider. Every field is exported
// so a test can seed exactly the chain state a scenario needs.
type FakeClient struct {
	mu sync.Mutex

	EraIndex   uint32
	CurrentEra uint32

	BlockHeight uint64
	BlockHash   string

	EraPointsTotal uint64
	EraPointsByVal map[string]uint64

	Validators []string

	Identities map[string][3]any // stash -> [name, sub, verified]

	Commissions        map[string]float64
	Controllers        map[string]string
	RewardDestinations map[string]string
	Bonded             map[string]uint64
	UnclaimedEras      map[string][]uint32
	QueuedKeys         map[string]string
	NextKeys           map[string]string
	ValidatorPrefs     map[string]ValidatorPref

	ProxyAnnouncements map[string][]ProxyAnnouncement
	Nominations        map[string]map[uint32][2]any // address -> era -> [targets, bonded]
	Nominators         map[string]NominatorInfo
	Balances           map[string]uint64

	Closed bool
}

// NewFakeClient returns an empty FakeClient ready for a test to populate.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		EraPointsByVal:     map[string]uint64{},
		Identities:         map[string][3]any{},
		Commissions:        map[string]float64{},
		Controllers:        map[string]string{},
		RewardDestinations: map[string]string{},
		Bonded:             map[string]uint64{},
		UnclaimedEras:      map[string][]uint32{},
		QueuedKeys:         map[string]string{},
		NextKeys:           map[string]string{},
		ValidatorPrefs:     map[string]ValidatorPref{},
		ProxyAnnouncements: map[string][]ProxyAnnouncement{},
		Nominations:        map[string]map[uint32][2]any{},
		Nominators:         map[string]NominatorInfo{},
		Balances:           map[string]uint64{},
	}
}

func (f *FakeClient) GetActiveEraIndex(_ context.Context) (uint32, error) { return f.EraIndex, nil }
func (f *FakeClient) GetCurrentEra(_ context.Context) (uint32, error)    { return f.CurrentEra, nil }

func (f *FakeClient) GetLatestBlock(_ context.Context) (uint64, string, error) {
	return f.BlockHeight, f.BlockHash, nil
}

func (f *FakeClient) GetTotalEraPoints(_ context.Context, _ uint32) (uint64, map[string]uint64, error) {
	return f.EraPointsTotal, f.EraPointsByVal, nil
}

func (f *FakeClient) CurrentValidators(_ context.Context) ([]string, error) { return f.Validators, nil }

func (f *FakeClient) GetFormattedIdentity(_ context.Context, stash string) (string, string, bool, error) {
	v, ok := f.Identities[stash]
	if !ok {
		return "", "", false, nil
	}
	name, _ := v[0].(string)
	sub, _ := v[1].(string)
	verified, _ := v[2].(bool)
	return name, sub, verified, nil
}

func (f *FakeClient) GetCommission(_ context.Context, stash string) (float64, error) {
	return f.Commissions[stash], nil
}

func (f *FakeClient) GetControllerFromStash(_ context.Context, stash string) (string, error) {
	return f.Controllers[stash], nil
}

func (f *FakeClient) GetRewardDestination(_ context.Context, stash string) (string, error) {
	return f.RewardDestinations[stash], nil
}

func (f *FakeClient) GetBondedAmount(_ context.Context, stash string) (uint64, error) {
	return f.Bonded[stash], nil
}

func (f *FakeClient) GetUnclaimedEras(_ context.Context, stash string) ([]uint32, error) {
	return f.UnclaimedEras[stash], nil
}

func (f *FakeClient) GetQueuedKeys(_ context.Context, stash string) (string, error) {
	return f.QueuedKeys[stash], nil
}

func (f *FakeClient) GetNextKeys(_ context.Context, stash string) (string, error) {
	return f.NextKeys[stash], nil
}

func (f *FakeClient) GetValidatorPref(_ context.Context, stash string) (ValidatorPref, error) {
	return f.ValidatorPrefs[stash], nil
}

func (f *FakeClient) GetProxyAnnouncements(_ context.Context, real string) ([]ProxyAnnouncement, error) {
	return f.ProxyAnnouncements[real], nil
}

func (f *FakeClient) GetNominationAt(_ context.Context, address string, era uint32) ([]string, uint64, error) {
	byEra, ok := f.Nominations[address]
	if !ok {
		return nil, 0, nil
	}
	v, ok := byEra[era]
	if !ok {
		return nil, 0, nil
	}
	targets, _ := v[0].([]string)
	bonded, _ := v[1].(uint64)
	return targets, bonded, nil
}

func (f *FakeClient) GetAllNominatorsMap(_ context.Context) (map[string]NominatorInfo, error) {
	return f.Nominators, nil
}

func (f *FakeClient) GetBalance(_ context.Context, address string) (uint64, error) {
	return f.Balances[address], nil
}

func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// FakeFactory always returns the same FakeClient regardless of endpoints,
// for wiring a demo App without a real chain.
type FakeFactory struct {
	Client *FakeClient
}

// NewFakeFactory returns a Factory that hands out a single shared FakeClient.
func NewFakeFactory(c *FakeClient) Factory {
	return &FakeFactory{Client: c}
}

func (f *FakeFactory) NewClient(_ []string) Client { return f.Client }
