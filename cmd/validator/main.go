package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/w3f/1kv-core/app/validator"
	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/jobs"
	"github.com/w3f/1kv-core/pkg/logging"
	"github.com/w3f/1kv-core/pkg/utils"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.New()
	if err != nil {
		panic(err)
	}

	factory, endpoints := chainFactory(logger)
	collaborators := demoCollaborators(logger)

	app, err := validator.Initialize(ctx, factory, endpoints, collaborators)
	if err != nil {
		logger.Fatal("initialize failed", zap.Error(err))
	}

	app.SetupServer()
	app.Start(ctx)
}

// chainFactory builds an HTTP chain client by default, or a FakeClient seeded
// for local demonstration when ONEKV_CHAIN_FAKE=1 — the raw RPC/telemetry
// client itself is out of this module's scope (§1); only the adapter
// boundary and these two implementations live here.
func chainFactory(logger *zap.Logger) (chain.Factory, []string) {
	if utils.Env("ONEKV_CHAIN_FAKE", "") == "1" {
		fake := chain.NewFakeClient()
		fake.EraIndex, fake.CurrentEra = 100, 100
		fake.BlockHeight = 20_000_000
		return chain.NewFakeFactory(fake), nil
	}

	endpoints := []string{utils.Env("ONEKV_CHAIN_ENDPOINT", "http://127.0.0.1:8080")}
	opts := chain.Opts{Endpoints: endpoints}
	logger.Info("chain adapter configured", zap.Strings("endpoints", endpoints))
	return chain.NewHTTPFactory(opts), endpoints
}

// demoCollaborators wires the action-job and notification collaborators
// that are out of this module's scope to no-op demo implementations, so the
// process runs end-to-end without a transaction signer or chat bot.
func demoCollaborators(logger *zap.Logger) validator.Collaborators {
	nominator := validator.NewDemoNominator(logger, "demo-stash", "demo-address", "demo-controller", false)
	return validator.Collaborators{
		Nominators: []jobs.Nominator{nominator},
		Claimer:    validator.NewDemoClaimer(logger),
		Bot:        validator.NewDemoBot(logger),
		Release:    validator.DemoReleaseFeed{Name: "v1.0.0", PublishedAt: time.Now().Add(-30 * 24 * time.Hour)},
	}
}
