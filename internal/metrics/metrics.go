// Package metrics exposes Prometheus counters for registry operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcomes used as the "result" label.
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultConflict   = "conflict"
	ResultNotFound   = "not_found"
	ResultError      = "error"
	ResultIODegraded = "io_degraded"
)

// Metrics owns a private registry so several instances (one per test) can
// coexist without duplicate registration panics.
type Metrics struct {
	reg        *prometheus.Registry
	operations *prometheus.CounterVec
	students   prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "student_registry",
			Name:      "operations_total",
			Help:      "Registry operations by name and result.",
		}, []string{"operation", "result"}),
		students: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "student_registry",
			Name:      "students",
			Help:      "Number of records seen by the last registry operation.",
		}),
	}

	reg.MustRegister(
		m.operations,
		m.students,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe counts one operation outcome. Safe on a nil receiver.
func (m *Metrics) Observe(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// SetStudents records the current registry size. Safe on a nil receiver.
func (m *Metrics) SetStudents(n int) {
	if m == nil {
		return
	}
	m.students.Set(float64(n))
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the exposition format for GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
