// Package metrics exposes planner activity as Prometheus collectors on a
// private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultAccepted labels placements that passed validation. Rejections use the
// rejection reason code as their label.
const ResultAccepted = "accepted"

// Recorder is what the services report to. A nil *Metrics is not valid; use
// Nop when metrics are not wanted.
type Recorder interface {
	Placement(result string)
	Removal()
	ProjectSaved()
	ActiveAssignments(n int)
	ObserveValidation(d time.Duration)
}

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	placements        *prometheus.CounterVec
	removals          prometheus.Counter
	projectsSaved     prometheus.Counter
	activeAssignments prometheus.Gauge
	validation        prometheus.Histogram
}

// New creates and registers the planner collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		placements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pinplanner_placements_total",
				Help: "Placement attempts by result (accepted or rejection reason).",
			},
			[]string{"result"},
		),
		removals: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pinplanner_removals_total",
				Help: "Assignments removed from the session board.",
			},
		),
		projectsSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pinplanner_projects_saved_total",
				Help: "Projects written to the project store.",
			},
		),
		activeAssignments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pinplanner_active_assignments",
				Help: "Assignments currently on the session board.",
			},
		),
		validation: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pinplanner_validation_duration_seconds",
				Help:    "Time taken to validate a placement.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	m.registry.MustRegister(
		m.placements,
		m.removals,
		m.projectsSaved,
		m.activeAssignments,
		m.validation,
	)
	return m
}

func (m *Metrics) Placement(result string) {
	m.placements.WithLabelValues(result).Inc()
}

func (m *Metrics) Removal() {
	m.removals.Inc()
}

func (m *Metrics) ProjectSaved() {
	m.projectsSaved.Inc()
}

func (m *Metrics) ActiveAssignments(n int) {
	m.activeAssignments.Set(float64(n))
}

func (m *Metrics) ObserveValidation(d time.Duration) {
	m.validation.Observe(d.Seconds())
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type nop struct{}

// Nop returns a Recorder that discards everything.
func Nop() Recorder { return nop{} }

func (nop) Placement(string)                {}
func (nop) Removal()                        {}
func (nop) ProjectSaved()                   {}
func (nop) ActiveAssignments(int)           {}
func (nop) ObserveValidation(time.Duration) {}
