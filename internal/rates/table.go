// Package rates provides currency conversion over a base-relative rate
// table fetched once at application start.
package rates

import (
	"math"
	"sync"

	"wishly/internal/core"
)

// Table maps currency codes to their rate relative to a fixed base currency
// (units of currency per 1 unit of base). The table starts empty and is
// loaded at most once by the startup fetch; until then every conversion
// falls back to identity.
type Table struct {
	mu    sync.RWMutex
	base  core.Currency
	gen   uint64
	rates map[core.Currency]float64
}

func NewTable(base core.Currency) *Table {
	return &Table{
		base:  base,
		rates: make(map[core.Currency]float64),
	}
}

// Base returns the base currency the rates are expressed against.
func (t *Table) Base() core.Currency {
	return t.base
}

// Load replaces the rate table contents. The base currency itself always
// rates 1 against the base, so it is filled in when the source omits it.
func (t *Table) Load(rates map[core.Currency]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates = make(map[core.Currency]float64, len(rates)+1)
	for c, r := range rates {
		if r > 0 {
			t.rates[c] = r
		}
	}
	if _, ok := t.rates[t.base]; !ok {
		t.rates[t.base] = 1
	}
	t.gen++
}

// Generation returns a counter bumped on every Load. Caches of rendered
// prices key on it so a load arriving after startup invalidates them.
func (t *Table) Generation() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gen
}

// Rate returns the base-relative rate for a currency.
func (t *Table) Rate(c core.Currency) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[c]
	return r, ok
}

// Empty reports whether no rates have been loaded yet.
func (t *Table) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rates) == 0
}

// Convert expresses amount, given in the from currency, in the to currency.
// When either code is missing from the table the amount is returned
// unchanged; conversions degrade gracefully instead of failing while rates
// have not loaded (or never load) for the session.
func (t *Table) Convert(amount float64, from, to core.Currency) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fromRate, okFrom := t.rates[from]
	toRate, okTo := t.rates[to]
	if !okFrom || !okTo {
		return amount
	}
	return amount * (toRate / fromRate)
}

// Round2 rounds a converted amount to 2 decimal digits for presentation.
// Stored amounts are never rounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
