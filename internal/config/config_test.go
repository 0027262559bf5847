package config

import (
	"strings"
	"testing"
	"time"

	"wishly/internal/core"
)

func validConfig() Config {
	return Config{
		Port:            "8082",
		RatesURL:        "https://api.example.com/latest",
		RatesTimeout:    10 * time.Second,
		BaseCurrency:    core.EUR,
		DisplayCurrency: core.EUR,
		SeedDir:         "data",
		RateLimitPerMin: 60,
		AllowedOrigins:  []string{"*"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "empty rates URL disables fetch",
			mutate: func(c *Config) { c.RatesURL = "" },
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "must be between 1 and 65535",
		},
		{
			name:        "invalid rates URL scheme",
			mutate:      func(c *Config) { c.RatesURL = "ftp://rates.example.com" },
			wantErr:     true,
			errorString: "invalid rates URL scheme",
		},
		{
			name:        "non-positive rates timeout",
			mutate:      func(c *Config) { c.RatesTimeout = 0 },
			wantErr:     true,
			errorString: "invalid rates timeout",
		},
		{
			name:        "non-positive rate limit",
			mutate:      func(c *Config) { c.RateLimitPerMin = 0 },
			wantErr:     true,
			errorString: "invalid rate limit",
		},
		{
			name:        "unsupported base currency",
			mutate:      func(c *Config) { c.BaseCurrency = "CHF" },
			wantErr:     true,
			errorString: "invalid base currency",
		},
		{
			name:        "unsupported display currency",
			mutate:      func(c *Config) { c.DisplayCurrency = "XXX" },
			wantErr:     true,
			errorString: "invalid display currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "RATES_URL", "RATES_TIMEOUT", "BASE_CURRENCY", "DISPLAY_CURRENCY", "RATE_LIMIT_PER_MIN"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("default port: got %s", cfg.Port)
	}
	if cfg.BaseCurrency != core.EUR || cfg.DisplayCurrency != core.EUR {
		t.Errorf("default currencies: got %s/%s", cfg.BaseCurrency, cfg.DisplayCurrency)
	}
	if cfg.RatesTimeout != 10*time.Second {
		t.Errorf("default rates timeout: got %v", cfg.RatesTimeout)
	}
	if cfg.RateLimitPerMin != 60 {
		t.Errorf("default rate limit: got %d", cfg.RateLimitPerMin)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_ORIGINS", "http://localhost:3000, http://localhost:5173")
	got := getEnvList("TEST_ORIGINS", []string{"*"})
	if len(got) != 2 || got[0] != "http://localhost:3000" || got[1] != "http://localhost:5173" {
		t.Fatalf("unexpected list: %v", got)
	}

	t.Setenv("TEST_ORIGINS", " , ")
	if got := getEnvList("TEST_ORIGINS", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected default for blank list, got %v", got)
	}
}
