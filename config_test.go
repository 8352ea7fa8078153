package goLedger

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Session.CookieName != "SessionId" {
		t.Fatalf("cookie name = %q, want SessionId", cfg.Session.CookieName)
	}
	if cfg.Session.Lifetime != 7*24*time.Hour {
		t.Fatalf("lifetime = %v, want 168h", cfg.Session.Lifetime)
	}
	if cfg.Voucher.BalanceTolerance != 0.01 {
		t.Fatalf("tolerance = %v, want 0.01", cfg.Voucher.BalanceTolerance)
	}
	if cfg.Dashboard.RefreshInterval != 5*time.Minute {
		t.Fatalf("refresh interval = %v, want 5m", cfg.Dashboard.RefreshInterval)
	}

	cfg.API.BaseURL = "https://ledger.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with base URL must validate, got %v", err)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	base := func() Config {
		cfg := defaultConfig()
		cfg.API.BaseURL = "https://ledger.example.com"
		return cfg
	}

	cases := map[string]func(*Config){
		"missing base URL":   func(c *Config) { c.API.BaseURL = "" },
		"relative base URL":  func(c *Config) { c.API.BaseURL = "/api" },
		"zero timeout":       func(c *Config) { c.API.Timeout = 0 },
		"zero lifetime":      func(c *Config) { c.Session.Lifetime = 0 },
		"negative tolerance": func(c *Config) { c.Voucher.BalanceTolerance = -0.5 },
		"unknown backend":    func(c *Config) { c.Storage.Backend = "etcd" },
		"zero refresh":       func(c *Config) { c.Dashboard.RefreshInterval = 0 },
		"empty login route":  func(c *Config) { c.Gate.LoginRoute = "" },
	}

	for name, mutate := range cases {
		cfg := base()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestCloneConfigIsolatesSlices(t *testing.T) {
	cfg := defaultConfig()
	clone := cloneConfig(cfg)

	clone.Gate.PublicRoutes[0] = "mutated"
	if cfg.Gate.PublicRoutes[0] == "mutated" {
		t.Fatal("cloneConfig must copy PublicRoutes")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithBaseURL("https://ledger.example.com")
	b.config.Storage.Backend = StorageMemory

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	t.Cleanup(eng.Close)

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderRedisBackendRequiresClient(t *testing.T) {
	b := New().WithBaseURL("https://ledger.example.com")
	b.config.Storage.Backend = StorageRedis

	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build to fail without a redis client")
	}
}
