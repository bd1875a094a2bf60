package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port int
	// TrustedProxies lists the proxy addresses or CIDRs whose X-Forwarded-For
	// is believed when resolving the client IP. Empty trusts none.
	TrustedProxies []string
	StoreDriver    string
	StoreBootstrap bool
	RateLimit      RateLimitConfig
	PaymentMock    bool
}

// RateLimitConfig bounds mutating requests per client IP. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS     float64
	Burst   int
	IdleTTL time.Duration
}

type fileConfig struct {
	Server struct {
		Port           int      `yaml:"port"`
		TrustedProxies []string `yaml:"trustedProxies"`
	} `yaml:"server"`
	Store struct {
		Driver    string `yaml:"driver"`
		Bootstrap *bool  `yaml:"bootstrap"`
	} `yaml:"store"`
	RateLimit struct {
		RPS     float64       `yaml:"rps"`
		Burst   int           `yaml:"burst"`
		IdleTTL time.Duration `yaml:"idleTTL"`
	} `yaml:"rateLimit"`
	Payments struct {
		Mock *bool `yaml:"mock"`
	} `yaml:"payments"`
}

func Default() Config {
	return Config{
		Port:        8080,
		StoreDriver: StoreDynamoDB,
		RateLimit: RateLimitConfig{
			RPS:     5,
			Burst:   10,
			IdleTTL: 10 * time.Minute,
		},
	}
}

// Load reads CONFIG_PATH (or configs/config.yaml) and applies env overrides.
func Load() Config {
	return LoadFromPath(os.Getenv("CONFIG_PATH"))
}

func LoadFromPath(configPath string) Config {
	cfg := Default()

	candidates := []string{"configs/config.yaml"}
	if configPath != "" {
		candidates = []string{configPath}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			log.Printf("[config] ignoring unreadable config path=%s err=%v", path, err)
			continue
		}
		merge(&cfg, parsed)
		break
	}

	ApplyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src fileConfig) {
	if src.Server.Port != 0 {
		dst.Port = src.Server.Port
	}
	if len(src.Server.TrustedProxies) > 0 {
		dst.TrustedProxies = src.Server.TrustedProxies
	}
	if src.Store.Driver != "" {
		dst.StoreDriver = strings.ToLower(src.Store.Driver)
	}
	if src.Store.Bootstrap != nil {
		dst.StoreBootstrap = *src.Store.Bootstrap
	}
	if src.RateLimit.RPS != 0 {
		dst.RateLimit.RPS = src.RateLimit.RPS
	}
	if src.RateLimit.Burst != 0 {
		dst.RateLimit.Burst = src.RateLimit.Burst
	}
	if src.RateLimit.IdleTTL != 0 {
		dst.RateLimit.IdleTTL = src.RateLimit.IdleTTL
	}
	if src.Payments.Mock != nil {
		dst.PaymentMock = *src.Payments.Mock
	}
}

func ApplyEnvOverrides(cfg *Config) {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("PORT"))); err == nil && v > 0 {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv("TRUSTED_PROXIES"); ok {
		cfg.TrustedProxies = splitList(v)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER"))); v != "" {
		cfg.StoreDriver = v
	}
	if v, ok := envBool("STORE_BOOTSTRAP"); ok {
		cfg.StoreBootstrap = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")), 64); err == nil {
		cfg.RateLimit.RPS = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST"))); err == nil {
		cfg.RateLimit.Burst = v
	}
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		if v, ok := envBool(key); ok && v {
			cfg.PaymentMock = true
		}
	}
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// splitList parses a comma separated list, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
