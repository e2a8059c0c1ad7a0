// Package validator wires the Store, Chain Adapter, Job Catalog, and
// Scheduler into one long-lived process, generalizing the teacher's
// app/controller.App (cron-driven reconcile loop + health server) from a
// single reconcile function to a full job catalog (§2, §5).
package validator

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/chain"
	"github.com/w3f/1kv-core/pkg/config"
	"github.com/w3f/1kv-core/pkg/db/store"
	"github.com/w3f/1kv-core/pkg/jobs"
	"github.com/w3f/1kv-core/pkg/logging"
	"github.com/w3f/1kv-core/pkg/metrics"
	"github.com/w3f/1kv-core/pkg/scheduler"
	"github.com/w3f/1kv-core/pkg/utils"
)

// App bundles every long-lived collaborator the process needs for its
// entire lifetime (§5's "one store client, one chain adapter... long-lived
// for process lifetime").
type App struct {
	Store     store.Store
	Chain     chain.Client
	Cfg       config.Config
	Logger    *zap.Logger
	Scheduler *scheduler.Scheduler
	Jobs      *jobs.Context
	Release   jobs.ReleaseFeed

	server *http.Server
}

// Initialize builds a Store and Chain client from environment-provided
// connection info, and a Scheduler bound to ctx. The CLI/config-loader
// boundary that would parse flags or a config file is out of scope; this
// mirrors the teacher's Initialize reading LOG_LEVEL/ADDR directly.
func Initialize(ctx context.Context, chainFactory chain.Factory, endpoints []string, collaborators Collaborators) (*App, error) {
	logger, err := logging.New()
	if err != nil {
		panic(err)
	}

	dbURL := utils.Env("POSTGRES_URL", "")
	st, err := store.New(ctx, logger, dbURL)
	if err != nil {
		logger.Fatal("store unavailable at boot", zap.Error(err))
		return nil, err
	}

	cfg := config.Load()
	chainClient := chainFactory.NewClient(endpoints)

	jobCtx := &jobs.Context{
		Store:      st,
		Chain:      chainClient,
		Cfg:        cfg,
		Logger:     logger,
		Nominators: collaborators.Nominators,
		Claimer:    collaborators.Claimer,
		Bot:        collaborators.Bot,
	}

	app := &App{
		Store:     st,
		Chain:     chainClient,
		Cfg:       cfg,
		Logger:    logger,
		Scheduler: scheduler.New(ctx, logger),
		Jobs:      jobCtx,
		Release:   collaborators.Release,
	}

	if err := app.SetupScheduler(); err != nil {
		return nil, err
	}
	return app, nil
}

// Collaborators bundles the action-job and read-only collaborators that are
// out of this module's scope (§1): transaction signing/submission, reward
// claiming, notification delivery, and the upstream release feed.
type Collaborators struct {
	Nominators []jobs.Nominator
	Claimer    jobs.Claimer
	Bot        jobs.Bot
	Release    jobs.ReleaseFeed
}

// SetupScheduler registers the full Job Catalog (§4.2) with cron.Spec taken
// from cfg.Cron, each wrapped so its non-reentrancy latch and timing are
// enforced by the Scheduler, not the job body.
func (a *App) SetupScheduler() error {
	catalog := []scheduler.Job{
		{Name: "monitor", Spec: a.Cfg.Cron.Monitor, Body: func(ctx context.Context) error { return a.Jobs.Monitor(ctx, a.Release) }},
		{Name: "clearOffline", Spec: a.Cfg.Cron.ClearOffline, Body: a.Jobs.ClearOffline},
		{Name: "eraPoints", Spec: a.Cfg.Cron.EraPoints, Body: a.Jobs.EraPoints},
		{Name: "activeValidator", Spec: a.Cfg.Cron.ActiveValidator, Body: a.Jobs.ActiveValidator},
		{Name: "inclusion", Spec: a.Cfg.Cron.Inclusion, Body: a.Jobs.Inclusion},
		{Name: "sessionKey", Spec: a.Cfg.Cron.SessionKey, Body: a.Jobs.SessionKey},
		{Name: "unclaimedEras", Spec: a.Cfg.Cron.UnclaimedEras, Body: a.Jobs.UnclaimedEras},
		{Name: "validatorPref", Spec: a.Cfg.Cron.ValidatorPref, Body: a.Jobs.ValidatorPref},
		{Name: "validity", Spec: a.Cfg.Cron.Validity, Body: a.Jobs.Validity},
		{Name: "score", Spec: a.Cfg.Cron.Score, Body: a.Jobs.Score},
		{Name: "eraStats", Spec: a.Cfg.Cron.EraStats, Body: a.Jobs.EraStats},
		{Name: "extNominations", Spec: a.Cfg.Cron.ExtNominations, Body: a.Jobs.ExtNominations},
		{Name: "execution", Spec: a.Cfg.Cron.Execution, Body: a.Jobs.Execution},
		{Name: "rewardClaim", Spec: a.Cfg.Cron.RewardClaiming, Body: a.Jobs.RewardClaim},
		{Name: "cancel", Spec: a.Cfg.Cron.Cancel, Body: a.Jobs.Cancel},
		{Name: "stale", Spec: a.Cfg.Cron.Stale, Body: a.Jobs.Stale},
	}

	for _, job := range catalog {
		if err := a.Scheduler.Register(job); err != nil {
			return err
		}
	}
	return nil
}

// SetupServer builds the ambient health/readiness/metrics HTTP server,
// mirroring the teacher's App.SetupServer.
func (a *App) SetupServer() {
	addr := utils.Env("ADDR", ":3000")

	r := mux.NewRouter()
	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })).Methods("GET")
	r.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if a.Ready() {
			w.WriteHeader(200)
		} else {
			w.WriteHeader(503)
		}
	})).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	a.server = &http.Server{Addr: addr, Handler: r}
}

// Ready reports whether the app is ready to serve traffic.
func (a *App) Ready() bool { return true }

// Alive reports whether the app is alive.
func (a *App) Alive() bool { return true }

// Start begins cron dispatch and the HTTP server, blocking until ctx is
// cancelled, then drains both.
func (a *App) Start(ctx context.Context) {
	a.Scheduler.Start()
	if a.server != nil {
		go func() { _ = a.server.ListenAndServe() }()
	}

	<-ctx.Done()
	a.Logger.Info("shutting down")
	if a.server != nil {
		_ = a.server.Close()
	}
	a.Scheduler.Stop()
	a.Store.Close()
	_ = a.Chain.Close()
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("shutdown complete")
}
