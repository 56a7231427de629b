package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts transfer attempts by terminal outcome
	// (committed, rejected, failed, cancelled).
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbank_transfers_total",
			Help: "Total transfer attempts by outcome",
		},
		[]string{"outcome"},
	)

	// TransferFailures counts terminal failures by kind.
	TransferFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbank_transfer_failures_total",
			Help: "Total terminal transfer failures by kind",
		},
		[]string{"kind"},
	)

	// TransferAmount observes committed transfer amounts.
	TransferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pocketbank_transfer_amount",
		Help:    "Committed transfer amounts",
		Buckets: []float64{1, 10, 100, 1000, 5000, 10000, 50000},
	})

	// TransferDuration observes end-to-end transfer attempt duration,
	// including backoff waits.
	TransferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pocketbank_transfer_duration_seconds",
		Help:    "Duration of transfer attempts",
		Buckets: prometheus.DefBuckets,
	})

	// GatewayRetries counts transient network failures that were retried.
	GatewayRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketbank_gateway_retries_total",
		Help: "Total gateway submits retried after a transient failure",
	})

	// ValidationChecks counts instant validation passes by result.
	ValidationChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbank_validation_checks_total",
			Help: "Total instant validation checks by result",
		},
		[]string{"result"},
	)

	// LimitWarnings counts approaching-limit warnings by type.
	LimitWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbank_limit_warnings_total",
			Help: "Total approaching-limit warnings by type",
		},
		[]string{"type"},
	)

	// CommitConflicts counts lost compare-and-swap commits.
	CommitConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pocketbank_commit_conflicts_total",
		Help: "Total state commits that lost the version race",
	})
)
