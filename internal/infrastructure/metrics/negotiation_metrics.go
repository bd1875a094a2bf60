package metrics

import (
	"context"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

// NegotiationMetrics counts negotiation events for the /metrics endpoint.
type NegotiationMetrics struct {
	created     prometheus.Counter
	transitions *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	conflicts   prometheus.Counter
}

var _ interfaces.INegotiationListener = (*NegotiationMetrics)(nil)

func NewNegotiationMetrics(reg prometheus.Registerer) *NegotiationMetrics {
	m := &NegotiationMetrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "negotiation",
			Name:      "created_total",
			Help:      "Negotiations opened.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "negotiation",
			Name:      "transitions_total",
			Help:      "Completed steps by step type and response type.",
		}, []string{"step_type", "response_type"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "negotiation",
			Name:      "outcomes_total",
			Help:      "Negotiations that reached a terminal contract status.",
		}, []string{"status"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "negotiation",
			Name:      "conflicts_total",
			Help:      "Responses rejected because the step was no longer current.",
		}),
	}
	reg.MustRegister(m.created, m.transitions, m.outcomes, m.conflicts)
	return m
}

func (m *NegotiationMetrics) OnNegotiationEvent(_ context.Context, event entities.NegotiationEvent) {
	switch event.Kind {
	case entities.NegotiationEventCreated:
		m.created.Inc()
	case entities.NegotiationEventAdvanced:
		m.transitions.WithLabelValues(string(event.StepType), string(event.ResponseType)).Inc()
		if event.ContractStatus.IsTerminal() {
			m.outcomes.WithLabelValues(string(event.ContractStatus)).Inc()
		}
	case entities.NegotiationEventConflict:
		m.conflicts.Inc()
	}
}
