// Package config is the typed configuration surface every job and the
// Constraint Evaluator read their schedules, weights, and thresholds from.
// Loading itself is deliberately minimal — Defaults() plus environment
// overrides via pkg/utils, mirroring how the teacher's Initialize reads
// LOG_LEVEL/ADDR rather than parsing a file. Full config file/flag parsing
// is the excluded CLI/config-loader boundary.
package config

import (
	"strconv"

	"github.com/w3f/1kv-core/pkg/utils"
)

// CronConfig holds the per-job cron overrides named in the external
// interfaces (§6): cron.{monitor, clearOffline, ...}.
type CronConfig struct {
	Monitor         string
	ClearOffline    string
	Validity        string
	Score           string
	EraStats        string
	Execution       string
	RewardClaiming  string
	Cancel          string
	Stale           string
	EraPoints       string
	ActiveValidator string
	Inclusion       string
	SessionKey      string
	UnclaimedEras   string
	ValidatorPref   string
	ExtNominations  string
}

// ProxyConfig configures the delayed-execution window.
type ProxyConfig struct {
	TimeDelayBlocks uint64
}

// GlobalConfig configures chain-identity parameters.
type GlobalConfig struct {
	NetworkPrefix int
}

// ConstraintsConfig holds per-component weights and thresholds for the
// Constraint Evaluator (§4.3, §6 constraints.*).
type ConstraintsConfig struct {
	CommissionCap          float64 // max commission fraction, e.g. 0.1 = 10%
	MinSelfStake           uint64
	MinConnectionTime      int64 // ms
	OfflineWeeklyCapMs     int64
	UnclaimedErasThreshold uint32 // four days of eras, network-specific
	RewardClaimThreshold   uint32
	ClientUpgradeGraceEras uint32
	KusamaRankMinimum      int
	MinClaimerBalance      uint64

	Weights ScoreWeights
}

// ScoreWeights are the per-component weights used by scoreAllCandidates.
type ScoreWeights struct {
	Inclusion      float64
	SpanInclusion  float64
	Discovered     float64
	Nominated      float64
	Rank           float64
	Unclaimed      float64
	Bonded         float64
	Faults         float64
	Offline        float64
	ExtNominations float64
	Randomness     float64
}

// FanoutConfig sizes the bounded-concurrency worker pools jobs use when
// looping over the candidate set.
type FanoutConfig struct {
	Concurrency int
}

// Config is the complete set of core-relevant configuration (§6).
type Config struct {
	Cron        CronConfig
	Proxy       ProxyConfig
	Global      GlobalConfig
	Constraints ConstraintsConfig
	Fanout      FanoutConfig
}

// Defaults returns the constants table of job schedules, weights, and
// thresholds, before any environment override is applied.
func Defaults() Config {
	return Config{
		Cron: CronConfig{
			Monitor:         "0 */15 * * * *",
			ClearOffline:    "0 0 0 * * 0", // weekly
			Validity:        "0 */5 * * * *",
			Score:           "0 */15 * * * *",
			EraStats:        "0 0 * * * *",
			Execution:       "*/15 * * * * *",
			RewardClaiming:  "0 0 */4 * * *",
			Cancel:          "0 */30 * * * *",
			Stale:           "0 0 * * * *",
			EraPoints:       "0 */10 * * * *",
			ActiveValidator: "0 */5 * * * *",
			Inclusion:       "0 */5 * * * *",
			SessionKey:      "0 */10 * * * *",
			UnclaimedEras:   "0 */20 * * * *",
			ValidatorPref:   "0 */10 * * * *",
			ExtNominations:  "0 0 */2 * * *",
		},
		Proxy: ProxyConfig{
			TimeDelayBlocks: 10850,
		},
		Global: GlobalConfig{
			NetworkPrefix: 2,
		},
		Constraints: ConstraintsConfig{
			CommissionCap:          0.10,
			MinSelfStake:           0,
			MinConnectionTime:      3 * 24 * 60 * 60 * 1000,
			OfflineWeeklyCapMs:     3 * 60 * 60 * 1000,
			UnclaimedErasThreshold: 4,
			RewardClaimThreshold:   4,
			ClientUpgradeGraceEras: 2,
			KusamaRankMinimum:      200,
			MinClaimerBalance:      1_000_000_000_000,
			Weights: ScoreWeights{
				Inclusion:      130,
				SpanInclusion:  70,
				Discovered:     5,
				Nominated:      30,
				Rank:           5,
				Unclaimed:      10,
				Bonded:         50,
				Faults:         5,
				Offline:        2,
				ExtNominations: 1,
				Randomness:     3,
			},
		},
		Fanout: FanoutConfig{
			Concurrency: 8,
		},
	}
}

// Load starts from Defaults() and overrides each field from an environment
// variable named ONEKV_<SECTION>_<KEY>, e.g. ONEKV_CRON_SCORE,
// ONEKV_CONSTRAINTS_COMMISSIONCAP. The network prefix accepts any
// non-negative integer, including 0; the other integer fields are read with
// utils.EnvInt, which ignores values that are not positive integers, so they
// cannot be overridden to zero.
func Load() Config {
	c := Defaults()

	c.Cron.Monitor = utils.Env("ONEKV_CRON_MONITOR", c.Cron.Monitor)
	c.Cron.ClearOffline = utils.Env("ONEKV_CRON_CLEAROFFLINE", c.Cron.ClearOffline)
	c.Cron.Validity = utils.Env("ONEKV_CRON_VALIDITY", c.Cron.Validity)
	c.Cron.Score = utils.Env("ONEKV_CRON_SCORE", c.Cron.Score)
	c.Cron.EraStats = utils.Env("ONEKV_CRON_ERASTATS", c.Cron.EraStats)
	c.Cron.Execution = utils.Env("ONEKV_CRON_EXECUTION", c.Cron.Execution)
	c.Cron.RewardClaiming = utils.Env("ONEKV_CRON_REWARDCLAIMING", c.Cron.RewardClaiming)
	c.Cron.Cancel = utils.Env("ONEKV_CRON_CANCEL", c.Cron.Cancel)
	c.Cron.Stale = utils.Env("ONEKV_CRON_STALE", c.Cron.Stale)
	c.Cron.EraPoints = utils.Env("ONEKV_CRON_ERAPOINTS", c.Cron.EraPoints)
	c.Cron.ActiveValidator = utils.Env("ONEKV_CRON_ACTIVEVALIDATOR", c.Cron.ActiveValidator)
	c.Cron.Inclusion = utils.Env("ONEKV_CRON_INCLUSION", c.Cron.Inclusion)
	c.Cron.SessionKey = utils.Env("ONEKV_CRON_SESSIONKEY", c.Cron.SessionKey)
	c.Cron.UnclaimedEras = utils.Env("ONEKV_CRON_UNCLAIMEDERAS", c.Cron.UnclaimedEras)
	c.Cron.ValidatorPref = utils.Env("ONEKV_CRON_VALIDATORPREF", c.Cron.ValidatorPref)
	c.Cron.ExtNominations = utils.Env("ONEKV_CRON_EXTNOMINATIONS", c.Cron.ExtNominations)

	c.Proxy.TimeDelayBlocks = uint64(utils.EnvInt("ONEKV_PROXY_TIMEDELAYBLOCKS", int(c.Proxy.TimeDelayBlocks)))
	if v, err := strconv.Atoi(utils.Env("ONEKV_GLOBAL_NETWORKPREFIX", "")); err == nil && v >= 0 {
		c.Global.NetworkPrefix = v
	}

	c.Constraints.CommissionCap = utils.EnvFloat("ONEKV_CONSTRAINTS_COMMISSIONCAP", c.Constraints.CommissionCap)
	c.Constraints.MinSelfStake = uint64(utils.EnvInt("ONEKV_CONSTRAINTS_MINSELFSTAKE", int(c.Constraints.MinSelfStake)))
	c.Constraints.MinConnectionTime = int64(utils.EnvInt("ONEKV_CONSTRAINTS_MINCONNECTIONTIME", int(c.Constraints.MinConnectionTime)))
	c.Constraints.OfflineWeeklyCapMs = int64(utils.EnvInt("ONEKV_CONSTRAINTS_OFFLINEWEEKLYCAPMS", int(c.Constraints.OfflineWeeklyCapMs)))
	c.Constraints.UnclaimedErasThreshold = uint32(utils.EnvInt("ONEKV_CONSTRAINTS_UNCLAIMEDERASTHRESHOLD", int(c.Constraints.UnclaimedErasThreshold)))
	c.Constraints.RewardClaimThreshold = uint32(utils.EnvInt("ONEKV_CONSTRAINTS_REWARDCLAIMTHRESHOLD", int(c.Constraints.RewardClaimThreshold)))
	c.Constraints.ClientUpgradeGraceEras = uint32(utils.EnvInt("ONEKV_CONSTRAINTS_CLIENTUPGRADEGRACEERAS", int(c.Constraints.ClientUpgradeGraceEras)))
	c.Constraints.KusamaRankMinimum = utils.EnvInt("ONEKV_CONSTRAINTS_KUSAMARANKMINIMUM", c.Constraints.KusamaRankMinimum)
	c.Constraints.MinClaimerBalance = uint64(utils.EnvInt("ONEKV_CONSTRAINTS_MINCLAIMERBALANCE", int(c.Constraints.MinClaimerBalance)))

	c.Constraints.Weights.Inclusion = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_INCLUSION", c.Constraints.Weights.Inclusion)
	c.Constraints.Weights.SpanInclusion = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_SPANINCLUSION", c.Constraints.Weights.SpanInclusion)
	c.Constraints.Weights.Discovered = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_DISCOVERED", c.Constraints.Weights.Discovered)
	c.Constraints.Weights.Nominated = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_NOMINATED", c.Constraints.Weights.Nominated)
	c.Constraints.Weights.Rank = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_RANK", c.Constraints.Weights.Rank)
	c.Constraints.Weights.Unclaimed = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_UNCLAIMED", c.Constraints.Weights.Unclaimed)
	c.Constraints.Weights.Bonded = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_BONDED", c.Constraints.Weights.Bonded)
	c.Constraints.Weights.Faults = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_FAULTS", c.Constraints.Weights.Faults)
	c.Constraints.Weights.Offline = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_OFFLINE", c.Constraints.Weights.Offline)
	c.Constraints.Weights.ExtNominations = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_EXTNOMINATIONS", c.Constraints.Weights.ExtNominations)
	c.Constraints.Weights.Randomness = utils.EnvFloat("ONEKV_CONSTRAINTS_WEIGHTS_RANDOMNESS", c.Constraints.Weights.Randomness)

	c.Fanout.Concurrency = utils.EnvInt("ONEKV_FANOUT_CONCURRENCY", c.Fanout.Concurrency)

	return c
}
