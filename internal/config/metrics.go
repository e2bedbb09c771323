package config

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts load outcomes and placeholder substitutions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	loads             *prometheus.CounterVec
	substitutions     *prometheus.CounterVec
	unresolvedAPIKeys prometheus.Counter
}

// NewMetrics creates the loader counters and registers them with reg.
// A nil reg leaves the counters unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "router",
			Subsystem: "config",
			Name:      "loads_total",
			Help:      "Configuration load attempts by result.",
		}, []string{"result"}),
		substitutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "router",
			Subsystem: "config",
			Name:      "env_substitutions_total",
			Help:      "Environment placeholders encountered by result.",
		}, []string{"result"}),
		unresolvedAPIKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "router",
			Subsystem: "config",
			Name:      "unresolved_api_keys_total",
			Help:      "API keys that still held a placeholder after substitution.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.loads, m.substitutions, m.unresolvedAPIKeys)
	}
	return m
}

func (m *Metrics) observeLoad(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		if kind, ok := KindOf(err); ok {
			result = string(kind)
		} else {
			result = "error"
		}
	}
	m.loads.WithLabelValues(result).Inc()
}

func (m *Metrics) observeSubstitution(resolved bool) {
	if m == nil {
		return
	}
	if resolved {
		m.substitutions.WithLabelValues("resolved").Inc()
		return
	}
	m.substitutions.WithLabelValues("missing").Inc()
}

func (m *Metrics) observeUnresolvedAPIKey() {
	if m == nil {
		return
	}
	m.unresolvedAPIKeys.Inc()
}
