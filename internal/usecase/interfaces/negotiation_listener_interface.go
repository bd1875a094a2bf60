package interfaces

import (
	"context"

	"waste_negotiation/internal/domain/entities"
)

// INegotiationListener is notified after negotiation state changed, or after
// a write lost a race, so dependent views can refresh.
type INegotiationListener interface {
	OnNegotiationEvent(ctx context.Context, event entities.NegotiationEvent)
}
