package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"waste_negotiation/internal/adapter/persistence/repository"
	"waste_negotiation/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swaggo/swag"
)

const createBody = `{"business_id":"biz-1","agency_id":"agc-1","title":"Weekly pickup","initial_offer":{"price":15000,"serviceScope":{"wasteTypes":["General Waste"],"collectionFrequency":"Weekly","additionalServices":[]},"timeline":{"contractDurationMonths":3},"additionalTerms":{"paymentTerms":"30 days","cancellationPolicy":"30 days notice"}}}`

func testRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "")
	return newRouter(cfg, repository.NewNegotiationMemoryRepository(), prometheus.NewRegistry())
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = config.StoreMemory
	cfg.PaymentMock = true
	r := testRouter(t, cfg)

	if w := do(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", w.Code)
	}

	w := do(r, http.MethodPost, "/v1/negotiations", createBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Contract struct {
			ContractID string `json:"contract_id"`
		} `json:"contract"`
		CurrentStep struct {
			StepID   string `json:"step_id"`
			StepType string `json:"step_type"`
		} `json:"current_step"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: invalid body: %v", err)
	}
	if created.Contract.ContractID == "" || created.CurrentStep.StepType != "counter_offer" {
		t.Fatalf("create: unexpected body %s", w.Body.String())
	}

	w = do(r, http.MethodGet, "/v1/negotiations/"+created.Contract.ContractID+"/current-step", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.CurrentStep.StepID) {
		t.Fatalf("current step: got %d body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/v1/negotiations/"+created.Contract.ContractID+"/steps/"+created.CurrentStep.StepID+"/responses", `{"response_type":"accept"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", w.Code)
	}
	for _, want := range []string{"negotiation_created_total 1", `negotiation_transitions_total{response_type="accept",step_type="counter_offer"} 1`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Fatalf("metrics: missing %q in\n%s", want, w.Body.String())
		}
	}
}

func TestNewRouter_RateLimitsWrites(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = config.StoreMemory
	cfg.RateLimit.RPS = 0.001
	cfg.RateLimit.Burst = 1
	r := testRouter(t, cfg)

	if w := do(r, http.MethodPost, "/v1/negotiations", createBody); w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/v1/negotiations", createBody); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second create: expected 429, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("reads are not limited, got %d", w.Code)
	}
}

func TestNewRouter_ForwardedForDoesNotResetLimit(t *testing.T) {
	send := func(r http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/negotiations", bytes.NewBufferString(createBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	cfg := config.Default()
	cfg.StoreDriver = config.StoreMemory
	cfg.RateLimit.RPS = 0.001
	cfg.RateLimit.Burst = 1

	t.Run("untrusted peer", func(t *testing.T) {
		r := testRouter(t, cfg)
		if code := send(r, "203.0.113.1"); code != http.StatusCreated {
			t.Fatalf("first create: expected 201, got %d", code)
		}
		if code := send(r, "203.0.113.2"); code != http.StatusTooManyRequests {
			t.Fatalf("rotating X-Forwarded-For must not reset the limit, got %d", code)
		}
	})

	t.Run("trusted proxy", func(t *testing.T) {
		trusted := cfg
		// httptest requests come from 192.0.2.1.
		trusted.TrustedProxies = []string{"192.0.2.1"}
		r := testRouter(t, trusted)
		if code := send(r, "203.0.113.1"); code != http.StatusCreated {
			t.Fatalf("first client: expected 201, got %d", code)
		}
		if code := send(r, "203.0.113.2"); code != http.StatusCreated {
			t.Fatalf("second client behind the proxy: expected 201, got %d", code)
		}
		if code := send(r, "203.0.113.1"); code != http.StatusTooManyRequests {
			t.Fatalf("first client again: expected 429, got %d", code)
		}
	})
}

func TestNewRouter_RoutesAreDocumented(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = config.StoreMemory
	r := testRouter(t, cfg)

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read swagger doc: %v", err)
	}
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("swagger doc is not json: %v", err)
	}

	param := regexp.MustCompile(`:(\w+)`)
	documented := 0
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		path := param.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		if _, ok := doc.Paths[path][strings.ToLower(route.Method)]; !ok {
			t.Fatalf("%s %s is served but not documented", route.Method, path)
		}
		documented++
	}
	operations := 0
	for _, methods := range doc.Paths {
		operations += len(methods)
	}
	if documented != operations {
		t.Fatalf("doc lists %d operations, router serves %d", operations, documented)
	}
}
