package payments

import (
	"context"
	"net/http"
	"time"

	"github.com/mercadopago/sdk-go/pkg/requester"
)

const idempotencyHeader = "X-Idempotency-Key"

type idempotencyKeyCtx struct{}

func withIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// idempotentRequester replaces the random X-Idempotency-Key the SDK puts on
// every POST with the key carried by the request context, so Mercado Pago
// returns the original payment when a charge is repeated.
type idempotentRequester struct {
	client *http.Client
}

var _ requester.Requester = (*idempotentRequester)(nil)

func newIdempotentRequester(client *http.Client) *idempotentRequester {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &idempotentRequester{client: client}
}

func (r *idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok && key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return r.client.Do(req)
}
