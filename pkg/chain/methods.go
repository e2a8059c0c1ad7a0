package chain

import (
	"context"
	"net/http"
)

const (
	pathEraIndex        = "/era/active"
	pathCurrentEra      = "/era/current"
	pathLatestBlock     = "/block/latest"
	pathEraPoints       = "/era/points"
	pathValidators      = "/validators/current"
	pathIdentity        = "/identity"
	pathCommission      = "/validator/commission"
	pathController      = "/validator/controller"
	pathRewardDest      = "/validator/reward-destination"
	pathBonded          = "/validator/bonded"
	pathUnclaimedEras   = "/validator/unclaimed-eras"
	pathQueuedKeys      = "/session/queued-keys"
	pathNextKeys        = "/session/next-keys"
	pathValidatorPref   = "/validator/pref"
	pathProxies         = "/proxy/announcements"
	pathNominationAt    = "/nomination"
	pathAllNominators   = "/nominators/all"
	pathBalance         = "/account/balance"
)

func (c *HTTPClient) GetActiveEraIndex(ctx context.Context) (uint32, error) {
	var out struct {
		Index uint32 `json:"index"`
	}
	if err := c.doJSON(ctx, http.MethodGet, pathEraIndex, nil, &out); err != nil {
		return 0, err
	}
	return out.Index, nil
}

func (c *HTTPClient) GetCurrentEra(ctx context.Context) (uint32, error) {
	var out struct {
		Era uint32 `json:"era"`
	}
	if err := c.doJSON(ctx, http.MethodGet, pathCurrentEra, nil, &out); err != nil {
		return 0, err
	}
	return out.Era, nil
}

func (c *HTTPClient) GetLatestBlock(ctx context.Context) (uint64, string, error) {
	var out struct {
		Height uint64 `json:"height"`
		Hash   string `json:"hash"`
	}
	if err := c.doJSON(ctx, http.MethodGet, pathLatestBlock, nil, &out); err != nil {
		return 0, "", err
	}
	return out.Height, out.Hash, nil
}

func (c *HTTPClient) GetTotalEraPoints(ctx context.Context, era uint32) (uint64, map[string]uint64, error) {
	var out struct {
		Total        uint64            `json:"total"`
		PerValidator map[string]uint64 `json:"perValidator"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathEraPoints, map[string]any{"era": era}, &out); err != nil {
		return 0, nil, err
	}
	return out.Total, out.PerValidator, nil
}

func (c *HTTPClient) CurrentValidators(ctx context.Context) ([]string, error) {
	var out struct {
		Validators []string `json:"validators"`
	}
	if err := c.doJSON(ctx, http.MethodGet, pathValidators, nil, &out); err != nil {
		return nil, err
	}
	return out.Validators, nil
}

func (c *HTTPClient) GetFormattedIdentity(ctx context.Context, stash string) (string, string, bool, error) {
	var out struct {
		Name     string `json:"name"`
		Sub      string `json:"sub"`
		Verified bool   `json:"verified"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathIdentity, map[string]any{"stash": stash}, &out); err != nil {
		return "", "", false, err
	}
	return out.Name, out.Sub, out.Verified, nil
}

func (c *HTTPClient) GetCommission(ctx context.Context, stash string) (float64, error) {
	var out struct {
		Commission float64 `json:"commission"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathCommission, map[string]any{"stash": stash}, &out); err != nil {
		return 0, err
	}
	return out.Commission, nil
}

func (c *HTTPClient) GetControllerFromStash(ctx context.Context, stash string) (string, error) {
	var out struct {
		Controller string `json:"controller"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathController, map[string]any{"stash": stash}, &out); err != nil {
		return "", err
	}
	return out.Controller, nil
}

func (c *HTTPClient) GetRewardDestination(ctx context.Context, stash string) (string, error) {
	var out struct {
		RewardDestination string `json:"rewardDestination"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathRewardDest, map[string]any{"stash": stash}, &out); err != nil {
		return "", err
	}
	return out.RewardDestination, nil
}

func (c *HTTPClient) GetBondedAmount(ctx context.Context, stash string) (uint64, error) {
	var out struct {
		Bonded uint64 `json:"bonded"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathBonded, map[string]any{"stash": stash}, &out); err != nil {
		return 0, err
	}
	return out.Bonded, nil
}

func (c *HTTPClient) GetUnclaimedEras(ctx context.Context, stash string) ([]uint32, error) {
	var out struct {
		Eras []uint32 `json:"eras"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathUnclaimedEras, map[string]any{"stash": stash}, &out); err != nil {
		return nil, err
	}
	return out.Eras, nil
}

func (c *HTTPClient) GetQueuedKeys(ctx context.Context, stash string) (string, error) {
	var out struct {
		Keys string `json:"keys"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathQueuedKeys, map[string]any{"stash": stash}, &out); err != nil {
		return "", err
	}
	return out.Keys, nil
}

func (c *HTTPClient) GetNextKeys(ctx context.Context, stash string) (string, error) {
	var out struct {
		Keys string `json:"keys"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathNextKeys, map[string]any{"stash": stash}, &out); err != nil {
		return "", err
	}
	return out.Keys, nil
}

func (c *HTTPClient) GetValidatorPref(ctx context.Context, stash string) (ValidatorPref, error) {
	var out ValidatorPref
	if err := c.doJSON(ctx, http.MethodPost, pathValidatorPref, map[string]any{"stash": stash}, &out); err != nil {
		return ValidatorPref{}, err
	}
	return out, nil
}

func (c *HTTPClient) GetProxyAnnouncements(ctx context.Context, real string) ([]ProxyAnnouncement, error) {
	var out struct {
		Announcements []ProxyAnnouncement `json:"announcements"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathProxies, map[string]any{"real": real}, &out); err != nil {
		return nil, err
	}
	return out.Announcements, nil
}

func (c *HTTPClient) GetNominationAt(ctx context.Context, address string, era uint32) ([]string, uint64, error) {
	var out struct {
		Targets []string `json:"targets"`
		Bonded  uint64   `json:"bonded"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathNominationAt, map[string]any{"address": address, "era": era}, &out); err != nil {
		return nil, 0, err
	}
	return out.Targets, out.Bonded, nil
}

func (c *HTTPClient) GetAllNominatorsMap(ctx context.Context) (map[string]NominatorInfo, error) {
	var out struct {
		Nominators map[string]NominatorInfo `json:"nominators"`
	}
	if err := c.doJSON(ctx, http.MethodGet, pathAllNominators, nil, &out); err != nil {
		return nil, err
	}
	return out.Nominators, nil
}

func (c *HTTPClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	var out struct {
		Balance uint64 `json:"balance"`
	}
	if err := c.doJSON(ctx, http.MethodPost, pathBalance, map[string]any{"address": address}, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}
