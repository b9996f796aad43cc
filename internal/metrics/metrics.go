package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts finished registration runs by outcome
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_registrations_total",
			Help: "Total number of identity registration runs by outcome",
		},
		[]string{"outcome"},
	)

	// RegistrationDuration tracks the wall clock time of a full registration
	RegistrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_registration_duration_seconds",
			Help:    "Identity registration duration in seconds",
			Buckets: []float64{1, 10, 30, 60, 120, 300, 600, 1200, 2400},
		},
		[]string{"outcome"},
	)

	// ConfirmationPolls counts commitment lookups by result
	ConfirmationPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_confirmation_polls_total",
			Help: "Total number of name commitment confirmation lookups",
		},
		[]string{"result"},
	)

	// RPCCallDuration tracks node RPC latency
	RPCCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_node_rpc_duration_seconds",
			Help:    "Node RPC call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "outcome"},
	)

	// InFlightRegistrations tracks background runs started by the API
	InFlightRegistrations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "identity_registrations_in_flight",
			Help: "Number of registration runs currently in progress",
		},
	)

	// JournalErrors counts failed progress writes
	JournalErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_journal_errors_total",
			Help: "Total number of registration progress records that failed to persist",
		},
	)
)
