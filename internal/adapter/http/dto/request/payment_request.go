package request

import "encoding/json"

// StepPaymentRequest is the payload for the payment step route.
//
// `mp_payload` is forwarded to Mercado Pago; a bare body is accepted too.
type StepPaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
