// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "tasktracker"

	LabelEndpoint = "endpoint"
	LabelStatus   = "status"

	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// Metrics groups the collectors updated by the HTTP handlers.
type Metrics struct {
	EndpointCalls *prometheus.CounterVec
	Errors        *prometheus.CounterVec
	Tasks         *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "endpoint_calls_total",
			Help:      "Total number of calls per endpoint.",
		}, []string{LabelEndpoint}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors occurred in the application.",
		}, []string{LabelEndpoint}),
		Tasks: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "tasks",
			Help:      "Current tasks",
		}, []string{LabelStatus}),
	}
}

// SetTasks records the current number of open and completed tasks.
func (m *Metrics) SetTasks(open, completed int) {
	m.Tasks.WithLabelValues(StatusOpen).Set(float64(open))
	m.Tasks.WithLabelValues(StatusCompleted).Set(float64(completed))
}
