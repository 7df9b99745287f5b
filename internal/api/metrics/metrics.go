// Package metrics defines and registers all custom Prometheus metrics for the
// attendance API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// CheckInsTotal counts successful check-ins.
// Label:
//   - status: the attendance status recorded (e.g. "present")
var CheckInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of successful check-ins, by recorded status.",
	},
	[]string{"status"},
)

// CheckOutsTotal counts successful check-outs.
var CheckOutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of successful check-outs.",
	},
)

// LifecycleConflictsTotal counts attendance requests rejected for being out of
// order (double check-in, check-out before check-in, double check-out).
// Label:
//   - reason: "already_checked_in", "not_checked_in", or "already_checked_out"
var LifecycleConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lifecycle_conflicts_total",
		Help:      "Total number of attendance requests rejected by the day lifecycle.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SummaryDuration measures how long an aggregation request takes to compute.
// Label:
//   - kind: "monthly", "weekly", "organization", "team", or "export"
var SummaryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_duration_seconds",
		Help:      "Duration of aggregation computations, by summary kind.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
