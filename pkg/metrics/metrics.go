// Package metrics provides Prometheus observability metrics for schedule
// generation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service
var Registry = prometheus.NewRegistry()

// factory registers metrics to our custom Registry directly
var factory = promauto.With(Registry)

// GenerationsTotal counts schedule generation requests by outcome.
var GenerationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shiftmind",
	Name:      "schedule_generations_total",
	Help:      "Total number of schedule generation requests by outcome",
}, []string{"outcome"})

// AlertsTotal counts generation alerts by type.
var AlertsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "shiftmind",
	Name:      "schedule_alerts_total",
	Help:      "Total number of alerts emitted during schedule generation, by type",
}, []string{"type"})

// LastRunCost tracks the total cost of the most recent generated schedule.
var LastRunCost = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "shiftmind",
	Name:      "schedule_last_run_cost",
	Help:      "Total cost of the most recently generated schedule",
})

// LastRunBudgetUtilization tracks cost over budget for the most recent run,
// as a percentage.
var LastRunBudgetUtilization = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "shiftmind",
	Name:      "schedule_last_run_budget_utilization_percent",
	Help:      "Budget utilization of the most recently generated schedule, in percent",
})

// LastRunShifts tracks the number of shifts in the most recent schedule.
var LastRunShifts = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "shiftmind",
	Name:      "schedule_last_run_shifts",
	Help:      "Number of shifts in the most recently generated schedule",
})

// GenerationDuration observes how long schedule generation takes end to end,
// including persistence.
var GenerationDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "shiftmind",
	Name:      "schedule_generation_duration_seconds",
	Help:      "Duration of schedule generation requests in seconds",
	Buckets:   prometheus.DefBuckets,
})
