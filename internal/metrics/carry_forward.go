package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameCarryForwardRuns     = "carry_forward_runs_total"
	NameCarryForwardClosed   = "carry_forward_closed_tasks_total"
	NameCarryForwardSpawned  = "carry_forward_spawned_tasks_total"
	NameCarryForwardFailures = "carry_forward_failures_total"
)

var CarryForwardRuns = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCarryForwardRuns,
		Help:      "Total carry-forward scheduler runs",
		Namespace: Namespace,
	},
)

var CarryForwardClosed = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCarryForwardClosed,
		Help:      "Total tasks closed by the carry-forward scheduler",
		Namespace: Namespace,
	},
)

var CarryForwardSpawned = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCarryForwardSpawned,
		Help:      "Total successor tasks spawned by the carry-forward scheduler",
		Namespace: Namespace,
	},
)

var CarryForwardFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCarryForwardFailures,
		Help:      "Total per-task failures during carry-forward runs",
		Namespace: Namespace,
	},
)
