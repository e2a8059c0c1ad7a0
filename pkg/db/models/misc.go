package models

import "time"

// DelayedTx is a recorded intent to execute a nomination at a block number
// (§3). Unique on (number, controller).
type DelayedTx struct {
	Number     uint64   `json:"number"`
	Controller string   `json:"controller"`
	Targets    []string `json:"targets"`
	CallHash   string   `json:"callHash"`
}

// Release is an upstream release record (§3).
type Release struct {
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ChainMetadata is the singleton chain descriptor (§3).
type ChainMetadata struct {
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
}

// Era is the singleton marker of the last era in which the service issued a
// nomination (lastNominatedEraIndex, §3).
type Era struct {
	LastNominatedEraIndex uint32 `json:"lastNominatedEraIndex"`
}
