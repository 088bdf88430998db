// Package stats exposes prometheus self-metrics for the dispatch workflow.
package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the workflow's prometheus instruments on its own registry,
// so tests and embedders don't fight over the global default one. A nil
// *Collector is valid and turns every method into a no-op.
type Collector struct {
	registry *prometheus.Registry

	unitsSucceeded   prometheus.Counter
	unitsFailed      prometheus.Counter
	measuresPosted   prometheus.Counter
	resourcesCreated prometheus.Counter
	entitiesCreated  prometheus.Counter
	dispatchDuration prometheus.Histogram
}

// New returns a Collector with all instruments registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		unitsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnocchid_units_succeeded_total",
			Help: "Work units whose measurements were durably recorded.",
		}),
		unitsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnocchid_units_failed_total",
			Help: "Work units abandoned after an unexpected store response.",
		}),
		measuresPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnocchid_measures_posted_total",
			Help: "Individual measurements accepted by the store.",
		}),
		resourcesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnocchid_resources_created_total",
			Help: "Resources created on first write.",
		}),
		entitiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gnocchid_entities_created_total",
			Help: "Metric streams created explicitly after a resource conflict.",
		}),
		dispatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gnocchid_dispatch_duration_seconds",
			Help:    "Wall time per dispatched batch.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	c.registry.MustRegister(
		c.unitsSucceeded, c.unitsFailed, c.measuresPosted,
		c.resourcesCreated, c.entitiesCreated, c.dispatchDuration,
	)
	return c
}

// Registry returns the prometheus registry backing the collector, for
// mounting a /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// UnitSucceeded counts one completed work unit.
func (c *Collector) UnitSucceeded() {
	if c != nil {
		c.unitsSucceeded.Inc()
	}
}

// UnitFailed counts one abandoned work unit.
func (c *Collector) UnitFailed() {
	if c != nil {
		c.unitsFailed.Inc()
	}
}

// MeasuresPosted counts n measurements accepted by the store.
func (c *Collector) MeasuresPosted(n int) {
	if c != nil {
		c.measuresPosted.Add(float64(n))
	}
}

// ResourceCreated counts one resource created by the recovery path.
func (c *Collector) ResourceCreated() {
	if c != nil {
		c.resourcesCreated.Inc()
	}
}

// EntityCreated counts one metric stream created by the recovery path.
func (c *Collector) EntityCreated() {
	if c != nil {
		c.entitiesCreated.Inc()
	}
}

// ObserveDispatch records the duration of one batch dispatch.
func (c *Collector) ObserveDispatch(d time.Duration) {
	if c != nil {
		c.dispatchDuration.Observe(d.Seconds())
	}
}
