package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway charges the accepted offer through an external provider
// (Mercado Pago in production, a local approver in mock mode).
//
// requestPayload is the provider's own request body. idempotencyKey identifies
// the charge: calls repeating a key must not charge again and return the
// payment created by the first one. The returned id ends up as
// providerReference in the payment step details.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
