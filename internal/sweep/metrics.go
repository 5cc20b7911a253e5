package sweep

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazar_sweep_job_runs_total",
		Help: "Sweep job invocations.",
	}, []string{"job"})

	jobErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazar_sweep_job_errors_total",
		Help: "Sweep job invocations that returned an error.",
	}, []string{"job"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bazar_sweep_job_duration_seconds",
		Help:    "Sweep job wall time.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
)
