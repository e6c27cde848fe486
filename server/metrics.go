package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	intents *prometheus.CounterVec
	flows   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campaignflow",
			Name:      "intents_total",
			Help:      "User intents applied to flows, by operation and outcome.",
		}, []string{"op", "outcome"}),
		flows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campaignflow",
			Name:      "flows",
			Help:      "Flows currently held in memory.",
		}),
	}
	reg.MustRegister(m.intents, m.flows)
	return m
}

func (m *metrics) committed(op string) {
	m.intents.WithLabelValues(op, "committed").Inc()
}

func (m *metrics) rejected(op string) {
	m.intents.WithLabelValues(op, "rejected").Inc()
}
