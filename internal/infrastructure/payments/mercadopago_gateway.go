package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"waste_negotiation/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway charges the payment step through Mercado Pago. In mock
// mode no request leaves the process and every payment is approved.
//
// Both modes honour the idempotency key: Mercado Pago through the
// X-Idempotency-Key header, mock mode by remembering the payments it made.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	now      func() time.Time

	mu       sync.Mutex
	mockPaid map[string]mockCharge
}

type mockCharge struct {
	id   string
	body json.RawMessage
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool) (*MercadoPagoGateway, error) {
	return newMercadoPagoGateway(accessToken, mockMode, nil)
}

func newMercadoPagoGateway(accessToken string, mockMode bool, httpClient *http.Client) (*MercadoPagoGateway, error) {
	if mockMode {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, now: time.Now, mockPaid: make(map[string]mockCharge)}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(newIdempotentRequester(httpClient)))
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), now: time.Now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(idempotencyKey, requestPayload)
	}
	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create start idempotency_key=%s payload_len=%d", idempotencyKey, len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	resp, err := g.client.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

// mockPayment echoes the request with the fields Mercado Pago adds to an
// approved payment. A repeated key returns the first payment unchanged.
func (g *MercadoPagoGateway) mockPayment(idempotencyKey string, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.mockPaid[idempotencyKey]; ok && idempotencyKey != "" {
		log.Printf("[payment][gateway] mock replay provider_payment_id=%s idempotency_key=%s", prev.id, idempotencyKey)
		return prev.id, "approved", prev.body, nil
	}

	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.now().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now.Format(time.RFC3339Nano)
	resp["date_approved"] = now.Format(time.RFC3339Nano)

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
		return "", "", nil, err
	}
	if idempotencyKey != "" {
		g.mockPaid[idempotencyKey] = mockCharge{id: id, body: b}
	}
	log.Printf("[payment][gateway] mock create success provider_payment_id=%s external_reference=%v", id, resp["external_reference"])
	return id, "approved", b, nil
}
