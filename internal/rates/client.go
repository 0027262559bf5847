package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wishly/internal/core"
	"wishly/internal/log"
)

// Client fetches a base-relative rate table from a remote JSON source.
// The fetch happens once at startup and is best effort: failure leaves the
// table empty and conversions fall back to identity for the session.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

// payload matches the common exchange-rate API shape:
//
//	{"base": "EUR", "rates": {"USD": 1.08, "SEK": 11.2, ...}}
type payload struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func NewClient(url string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent(log.ComponentRates),
	}
}

// Fetch retrieves and decodes the rate table.
func (c *Client) Fetch(ctx context.Context) (map[core.Currency]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch rates: unexpected status %d", resp.StatusCode)
	}

	var p payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}

	out := make(map[core.Currency]float64, len(p.Rates))
	for code, rate := range p.Rates {
		out[core.Currency(code)] = rate
	}
	return out, nil
}

// Populate fetches the rate table into t. Errors are logged and swallowed:
// the application keeps serving with identity conversion.
func (c *Client) Populate(ctx context.Context, t *Table) {
	if c.url == "" {
		c.logger.Info("No rates URL configured, conversions stay identity")
		return
	}
	fetched, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn("Rate fetch failed, conversions stay identity", "error", err, "url", c.url)
		return
	}
	t.Load(fetched)
	c.logger.Info("Rate table loaded", "url", c.url, "currencies", len(fetched), "base", string(t.Base()))
}
