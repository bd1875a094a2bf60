package metrics

import (
	"context"
	"testing"

	"waste_negotiation/internal/domain/entities"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNegotiationMetrics_OnNegotiationEvent(t *testing.T) {
	m := NewNegotiationMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnNegotiationEvent(ctx, entities.NegotiationEvent{Kind: entities.NegotiationEventCreated})
	m.OnNegotiationEvent(ctx, entities.NegotiationEvent{
		Kind:           entities.NegotiationEventAdvanced,
		StepType:       entities.StepTypeCounterOffer,
		ResponseType:   entities.ResponseCounter,
		ContractStatus: entities.ContractStatusNegotiating,
	})
	m.OnNegotiationEvent(ctx, entities.NegotiationEvent{
		Kind:           entities.NegotiationEventAdvanced,
		StepType:       entities.StepTypePayment,
		ResponseType:   entities.ResponsePayment,
		ContractStatus: entities.ContractStatusActive,
	})
	m.OnNegotiationEvent(ctx, entities.NegotiationEvent{Kind: entities.NegotiationEventConflict})
	m.OnNegotiationEvent(ctx, entities.NegotiationEvent{Kind: entities.NegotiationEventConflict})

	if got := testutil.ToFloat64(m.created); got != 1 {
		t.Fatalf("expected 1 created, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("counter_offer", "counter")); got != 1 {
		t.Fatalf("expected 1 counter transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("active")); got != 1 {
		t.Fatalf("expected 1 active outcome, got %v", got)
	}
	if got := testutil.CollectAndCount(m.outcomes); got != 1 {
		t.Fatalf("non-terminal events must not count as outcomes, got %d series", got)
	}
	if got := testutil.ToFloat64(m.conflicts); got != 2 {
		t.Fatalf("expected 2 conflicts, got %v", got)
	}
}
