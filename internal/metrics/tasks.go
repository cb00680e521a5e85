package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTasks             = "tasks"
	NameTotalCreatedTasks = "total_created_tasks"
)

var Tasks = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name:      NameTasks,
		Help:      "Current tasks by status",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var TotalCreatedTasks = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalCreatedTasks,
		Help:      "Total tasks created through the API",
		Namespace: Namespace,
	},
)
