package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the dashboard refresh engine
type Metrics struct {
	PollTicks          prometheus.Counter
	PollTicksSkipped   prometheus.Counter
	FetchFailures      prometheus.Counter
	StaleResponses     prometheus.Counter
	SnapshotsPublished prometheus.Counter
	SchedulerState     *prometheus.GaugeVec
	StatsRequests      prometheus.Counter
	LicenseSweepUpdate prometheus.Counter
}

// New creates and registers all metrics on reg.
// Pass prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PollTicks: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_poll_ticks_total",
			Help: "Total number of polling ticks that started a silent refresh",
		}),
		PollTicksSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_poll_ticks_skipped_total",
			Help: "Ticks skipped because the previous refresh was still in flight",
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_stats_fetch_failures_total",
			Help: "Total number of failed statistics fetches",
		}),
		StaleResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_stale_responses_total",
			Help: "Fetch results discarded because the session moved on",
		}),
		SnapshotsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_snapshots_published_total",
			Help: "Snapshots that replaced the published one",
		}),
		SchedulerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "notary_admin_scheduler_state",
			Help: "1 for the current polling scheduler state, 0 otherwise",
		}, []string{"state"}),
		StatsRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_stats_requests_total",
			Help: "Statistics computations served by the API",
		}),
		LicenseSweepUpdate: factory.NewCounter(prometheus.CounterOpts{
			Name: "notary_admin_license_sweep_updates_total",
			Help: "Notary license labels rewritten by the nightly sweep",
		}),
	}
}

// NewNop returns metrics registered on a private registry, for callers that do not export them
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// SetSchedulerState marks state as the current one among states
func (m *Metrics) SetSchedulerState(state string, states []string) {
	for _, s := range states {
		value := 0.0
		if s == state {
			value = 1
		}
		m.SchedulerState.WithLabelValues(s).Set(value)
	}
}
