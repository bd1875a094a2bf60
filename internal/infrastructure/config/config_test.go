package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadFromPath_Defaults(t *testing.T) {
	cfg := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if cfg.Port != 8080 || cfg.StoreDriver != StoreDynamoDB || cfg.PaymentMock {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RateLimit.RPS != 5 || cfg.RateLimit.Burst != 10 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.TrustedProxies != nil {
		t.Fatalf("no proxy should be trusted by default, got %v", cfg.TrustedProxies)
	}
}

func TestLoadFromPath_TrustedProxies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  trustedProxies: ["10.0.0.0/8", "192.168.1.2"]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadFromPath(path)
	if want := []string{"10.0.0.0/8", "192.168.1.2"}; !reflect.DeepEqual(cfg.TrustedProxies, want) {
		t.Fatalf("expected %v, got %v", want, cfg.TrustedProxies)
	}

	t.Setenv("TRUSTED_PROXIES", " 172.16.0.1 ,, 172.16.0.2")
	cfg = LoadFromPath(path)
	if want := []string{"172.16.0.1", "172.16.0.2"}; !reflect.DeepEqual(cfg.TrustedProxies, want) {
		t.Fatalf("expected %v, got %v", want, cfg.TrustedProxies)
	}

	t.Setenv("TRUSTED_PROXIES", "")
	if cfg = LoadFromPath(path); cfg.TrustedProxies != nil {
		t.Fatalf("an empty TRUSTED_PROXIES must trust none, got %v", cfg.TrustedProxies)
	}
}

func TestLoadFromPath_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
store:
  driver: Postgres
  bootstrap: true
rateLimit:
  rps: 2.5
  burst: 4
  idleTTL: 1m
payments:
  mock: false
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := LoadFromPath(path)
	if cfg.Port != 9090 || cfg.StoreDriver != StorePostgres || !cfg.StoreBootstrap {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RateLimit.RPS != 2.5 || cfg.RateLimit.Burst != 4 || cfg.RateLimit.IdleTTL != time.Minute {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}

	t.Setenv("PORT", "7070")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg = LoadFromPath(path)
	if cfg.Port != 7070 || cfg.StoreDriver != StoreMemory || cfg.RateLimit.RPS != 0 || !cfg.PaymentMock {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadFromPath_InvalidYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := LoadFromPath(path)
	if cfg.Port != 8080 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
