// Package observability centralises the resolver's prometheus surface: one
// structured measurement per pipeline stage instead of ad hoc printing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricPoolsResolvedTotal = "resolver_pools_resolved_total"
	MetricStageDuration      = "resolver_stage_duration_seconds"
	MetricStageErrorsTotal   = "resolver_stage_errors_total"
	MetricUnsupportedTotal   = "resolver_unsupported_accounts_total"
)

// Pipeline stage labels.
const (
	StageDecode    = "decode"
	StageResolve   = "resolve"
	StageAssess    = "assess"
	StageNormalize = "normalize"
)

var (
	// PoolsResolved counts completed resolutions per protocol.
	PoolsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: MetricPoolsResolvedTotal,
		Help: "Completed pool resolutions by protocol.",
	}, []string{"protocol"})

	// StageDuration observes per-stage latency per protocol.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    MetricStageDuration,
		Help:    "Duration of each resolution pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage", "protocol"})

	// StageErrors counts failures per stage.
	StageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: MetricStageErrorsTotal,
		Help: "Resolution failures by pipeline stage.",
	}, []string{"stage"})

	// UnsupportedAccounts counts accounts the detector rejected.
	UnsupportedAccounts = promauto.NewCounter(prometheus.CounterOpts{
		Name: MetricUnsupportedTotal,
		Help: "Accounts no known protocol layout claimed.",
	})
)

// ObserveStage records one stage execution.
func ObserveStage(stage, protocol string, start time.Time) {
	StageDuration.WithLabelValues(stage, protocol).Observe(time.Since(start).Seconds())
}
