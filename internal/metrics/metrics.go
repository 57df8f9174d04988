// Package metrics exposes plan and condition activity as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "escrowrail"

// Collector records lifecycle events.
type Collector struct {
	registry   *prometheus.Registry
	plans      *prometheus.CounterVec
	legs       prometheus.Histogram
	conditions *prometheus.CounterVec
	requests   *prometheus.CounterVec
}

// New creates a Collector with its own registry.
// Go runtime and process collectors are registered alongside.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "plans_built_total",
				Help:      "Total number of escrow plans built",
			},
			[]string{"valid"},
		),
		legs: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "plan_legs",
				Help:      "Number of settlement legs per plan",
				Buckets:   []float64{1, 2, 3, 5, 8, 13},
			},
		),
		conditions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "condition_transitions_total",
				Help:      "Total number of escrow condition transitions",
			},
			[]string{"condition_id", "status", "actor"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"route", "code"},
		),
	}
	reg.MustRegister(
		c.plans, c.legs, c.conditions, c.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Hooks returns lifecycle hooks feeding the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPlanBuilt: func(_ context.Context, ev *domain.PlanEvent) {
			c.plans.WithLabelValues(strconv.FormatBool(ev.OverallValid)).Inc()
			c.legs.Observe(float64(ev.Legs))
		},
		OnConditionResolved: func(_ context.Context, ev *domain.ConditionEvent) {
			c.conditions.WithLabelValues(ev.ConditionID, string(ev.To), string(ev.Actor)).Inc()
		},
	}
}

// ObserveRequest counts one API request.
func (c *Collector) ObserveRequest(route string, code int) {
	c.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
