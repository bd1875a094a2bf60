package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewMercadoPagoGateway(t *testing.T) {
	if _, err := NewMercadoPagoGateway("", false); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}

	g, err := NewMercadoPagoGateway("", true)
	if err != nil || g == nil || !g.mockMode {
		t.Fatalf("expected mock gateway, got %+v err=%v", g, err)
	}
}

func TestMercadoPagoGateway_MockPayment(t *testing.T) {
	g, _ := NewMercadoPagoGateway("", true)
	g.now = func() time.Time { return time.Unix(0, 42).UTC() }

	id, status, raw, err := g.CreatePayment(context.Background(), "s-7", json.RawMessage(`{"transaction_amount":18000,"external_reference":"c-1"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "42" || status != "approved" {
		t.Fatalf("unexpected id/status: %s %s", id, status)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	if body["external_reference"] != "c-1" || body["transaction_amount"] != float64(18000) || body["status_detail"] != "accredited" {
		t.Fatalf("unexpected mock response: %s", raw)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, _, _, err := g.CreatePayment(context.Background(), "s-7", json.RawMessage(`{}`)); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestMercadoPagoGateway_MockPaymentRepeatedKey(t *testing.T) {
	g, _ := NewMercadoPagoGateway("", true)
	tick := int64(0)
	g.now = func() time.Time { tick++; return time.Unix(0, tick).UTC() }

	first, _, _, err := g.CreatePayment(context.Background(), "s-7", json.RawMessage(`{"transaction_amount":100}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	again, _, _, err := g.CreatePayment(context.Background(), "s-7", json.RawMessage(`{"transaction_amount":100}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first != again {
		t.Fatalf("repeated key charged twice: %s then %s", first, again)
	}

	other, _, _, _ := g.CreatePayment(context.Background(), "s-9", json.RawMessage(`{"transaction_amount":100}`))
	if other == first {
		t.Fatalf("different steps share payment %s", other)
	}
}

func TestMercadoPagoGateway_SendsStepIdempotencyKey(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		mu.Unlock()
		return &http.Response{
			StatusCode: http.StatusCreated,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"id":123,"status":"approved"}`)),
			Request:    r,
		}, nil
	})}

	g, err := newMercadoPagoGateway("TEST-token", false, client)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for i := 0; i < 2; i++ {
		id, status, _, err := g.CreatePayment(context.Background(), "s-7", json.RawMessage(`{"transaction_amount":100,"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("call %d: unexpected err: %v", i, err)
		}
		if id != "123" || status != "approved" {
			t.Fatalf("call %d: unexpected id/status: %s %s", i, id, status)
		}
	}

	if len(keys) != 2 || keys[0] != "s-7" || keys[1] != "s-7" {
		t.Fatalf("expected both requests keyed by the step, got %v", keys)
	}
}
