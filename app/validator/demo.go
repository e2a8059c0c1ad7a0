package validator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/jobs"
)

// DemoNominator is a no-op Nominator that logs instead of signing or
// submitting anything, mirroring the teacher's FakeProvider for local
// development and cmd/validator's demo wiring. Transaction signing and
// submission are outside this module's scope (§1).
type DemoNominator struct {
	logger         *zap.Logger
	stash, address string
	controllerAddr string
	proxy          bool
}

// NewDemoNominator returns a Nominator that logs every action it is asked
// to take instead of performing it.
func NewDemoNominator(logger *zap.Logger, stash, address, controller string, proxy bool) *DemoNominator {
	return &DemoNominator{logger: logger, stash: stash, address: address, controllerAddr: controller, proxy: proxy}
}

func (d *DemoNominator) Stash() string      { return d.stash }
func (d *DemoNominator) Address() string    { return d.address }
func (d *DemoNominator) Controller() string { return d.controllerAddr }
func (d *DemoNominator) IsProxy() bool      { return d.proxy }

func (d *DemoNominator) SendStakingTx(_ context.Context, targets []string) (string, error) {
	d.logger.Info("demo nominator: would submit nominate tx", zap.String("stash", d.stash), zap.Strings("targets", targets))
	return "0xdemo", nil
}

func (d *DemoNominator) CancelTx(_ context.Context, announcementHeight uint64) error {
	d.logger.Info("demo nominator: would cancel announcement", zap.String("stash", d.stash), zap.Uint64("height", announcementHeight))
	return nil
}

// DemoClaimer logs batched claims instead of submitting them.
type DemoClaimer struct {
	logger *zap.Logger
}

// NewDemoClaimer returns a Claimer that logs instead of submitting.
func NewDemoClaimer(logger *zap.Logger) *DemoClaimer { return &DemoClaimer{logger: logger} }

func (d *DemoClaimer) Claim(_ context.Context, eras []jobs.EraStashPair) error {
	d.logger.Info("demo claimer: would submit batched claim", zap.Int("pairs", len(eras)))
	return nil
}

// DemoBot logs notifications instead of delivering them to a chat channel.
type DemoBot struct {
	logger *zap.Logger
}

// NewDemoBot returns a Bot that logs instead of delivering.
func NewDemoBot(logger *zap.Logger) *DemoBot { return &DemoBot{logger: logger} }

func (d *DemoBot) SendMessage(_ context.Context, text string) error {
	d.logger.Info("demo bot notification", zap.String("text", text))
	return nil
}

// DemoReleaseFeed returns a fixed release, standing in for the excluded
// upstream release-feed client.
type DemoReleaseFeed struct {
	Name        string
	PublishedAt time.Time
}

func (f DemoReleaseFeed) LatestRelease(_ context.Context) (string, time.Time, error) {
	return f.Name, f.PublishedAt, nil
}
