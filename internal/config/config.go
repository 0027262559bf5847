package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"wishly/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Exchange rates
	RatesURL     string
	RatesTimeout time.Duration
	BaseCurrency core.Currency

	// Initial display currency for converted prices
	DisplayCurrency core.Currency

	// Seed data directory (optional seed_people.txt)
	SeedDir string

	// Per-IP budget for mutating requests, per minute
	RateLimitPerMin int

	// CORS
	AllowedOrigins []string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8082"),

		RatesURL:     getEnv("RATES_URL", ""),
		RatesTimeout: getEnvDuration("RATES_TIMEOUT", 10*time.Second),
		BaseCurrency: core.Currency(getEnv("BASE_CURRENCY", "EUR")),

		DisplayCurrency: core.Currency(getEnv("DISPLAY_CURRENCY", "EUR")),

		SeedDir: getEnv("SEED_DIR", "data"),

		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 60),

		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate rates URL if provided; an empty URL disables the fetch
	if c.RatesURL != "" {
		if parsedURL, err := url.Parse(c.RatesURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid rates URL '%s': %v", c.RatesURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid rates URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.RatesTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid rates timeout %v: must be positive", c.RatesTimeout))
	}

	if err := c.BaseCurrency.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid base currency '%s': must be one of %v", c.BaseCurrency, core.Currencies()))
	}
	if c.RateLimitPerMin < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMin))
	}

	if err := c.DisplayCurrency.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid display currency '%s': must be one of %v", c.DisplayCurrency, core.Currencies()))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
