// Package scheduler drives the job catalog on cron-like schedules with
// strict per-job non-reentrancy, generalizing the teacher's
// app/controller.App cron wiring (cron.New(cron.WithSeconds(),
// cron.WithChain(cron.Recover(...)))) from a single reconcile loop to an
// arbitrary set of named jobs.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/w3f/1kv-core/pkg/metrics"
)

// Job is one entry in the catalog: a name, a cron spec, and an async body.
// Body errors are logged and never propagate — per-job failures never abort
// the scheduler.
type Job struct {
	Name string
	Spec string
	Body func(ctx context.Context) error
}

// Scheduler wraps robfig/cron with a per-job non-reentrancy latch. Ticks
// that fire while the same job's previous body is still running are dropped
// silently, never queued.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	running *xsync.Map[string, *atomic.Bool]
	ctx     context.Context
}

// New builds a Scheduler bound to ctx; job bodies run with ctx as their
// parent so cancelling ctx reaches in-flight bodies that themselves respect
// ctx.Done(). Stop cancels nothing; it only waits for in-flight bodies.
func New(ctx context.Context, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(newCronLogger(logger)))),
		logger:  logger,
		running: xsync.NewMap[string, *atomic.Bool](),
		ctx:     ctx,
	}
}

// Register adds job to the catalog. Safe to call only before Start.
func (s *Scheduler) Register(job Job) error {
	latch, _ := s.running.LoadOrStore(job.Name, &atomic.Bool{})

	_, err := s.cron.AddFunc(job.Spec, func() {
		if !latch.CompareAndSwap(false, true) {
			s.logger.Debug("job tick dropped, previous run still in flight", zap.String("job", job.Name))
			metrics.ObserveDroppedTick(job.Name)
			return
		}
		defer latch.Store(false)

		start := time.Now()
		s.logger.Info("job started", zap.String("job", job.Name), zap.Time("at", start))
		err := job.Body(s.ctx)
		metrics.ObserveRun(job.Name, time.Since(start).Seconds(), err)
		if err != nil {
			s.logger.Warn("job failed", zap.String("job", job.Name), zap.Error(err), zap.Duration("elapsed", time.Since(start)))
			return
		}
		s.logger.Info("job finished", zap.String("job", job.Name), zap.Duration("elapsed", time.Since(start)))
	})
	return err
}

// Start begins dispatch.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop drains in-flight invocations and stops dispatch.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger adapts a *zap.Logger to cron.Logger, the only place this
// package touches cron's own logging interface.
type cronLogger struct {
	l *zap.Logger
}

func newCronLogger(l *zap.Logger) cron.Logger { return &cronLogger{l: l} }

func (c *cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Sugar().Infow(msg, keysAndValues...)
}

func (c *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
