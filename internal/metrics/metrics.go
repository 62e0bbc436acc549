package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for mocked calls
const (
	OutcomeResolved   = "resolved"
	OutcomeUnexpected = "unexpected"
	OutcomeWrongType  = "wrong_type"
)

// Metrics holds the Prometheus collectors for mocked calls
type Metrics struct {
	registerer prometheus.Registerer

	// CallsTotal counts mocked calls by shape, function and outcome
	CallsTotal *prometheus.CounterVec
	// FailuresTotal counts failures reported to a sink, by shape
	FailuresTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// A nil reg uses a private registry, so tests never collide.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registerer: reg,
		CallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Number of mocked calls",
		}, []string{"shape", "function", "outcome"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reported_failures_total",
			Help:      "Number of assertion failures reported by mocks",
		}, []string{"shape"}),
	}

	var registered []prometheus.Collector
	for _, c := range []prometheus.Collector{m.CallsTotal, m.FailuresTotal} {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		registered = append(registered, c)
	}

	return m, nil
}

// ObserveCall counts one mocked call
func (m *Metrics) ObserveCall(shape, function, outcome string) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(shape, function, outcome).Inc()
	if outcome != OutcomeResolved {
		m.FailuresTotal.WithLabelValues(shape).Inc()
	}
}

// Close unregisters all metrics
func (m *Metrics) Close() {
	m.registerer.Unregister(m.CallsTotal)
	m.registerer.Unregister(m.FailuresTotal)
}
