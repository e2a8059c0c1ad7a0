// Package metrics exposes job-run counters and timing histograms over
// Prometheus (§4.1's "logs timing" requirement, extended to a scrapeable
// surface the way the rest of the pack wires observability).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "onekv"

var (
	jobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "runs_total",
		Help:      "Job invocations, by job name and outcome.",
	}, []string{"job", "outcome"})

	jobDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "duration_seconds",
		Help:      "Job body duration in seconds, by job name.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})

	jobDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "ticks_dropped_total",
		Help:      "Cron ticks dropped because the job's prior invocation was still running.",
	}, []string{"job"})
)

func init() {
	prometheus.MustRegister(jobRuns, jobDuration, jobDropped)
}

// ObserveRun records one completed job invocation.
func ObserveRun(job string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	jobRuns.WithLabelValues(job, outcome).Inc()
	jobDuration.WithLabelValues(job).Observe(seconds)
}

// ObserveDroppedTick records a tick dropped by the non-reentrancy latch.
func ObserveDroppedTick(job string) {
	jobDropped.WithLabelValues(job).Inc()
}

// Handler returns the HTTP handler the ambient server mounts at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
