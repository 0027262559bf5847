package http

import (
	"testing"
	"time"
)

func TestRateLimiterBudget(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("requests within budget must be allowed")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("request over budget must be rejected")
	}

	t.Run("budget is per client", func(t *testing.T) {
		if !rl.allow("5.6.7.8") {
			t.Fatal("a different client must get its own budget")
		}
	})

	t.Run("expired window resets the budget", func(t *testing.T) {
		rl.mu.Lock()
		rl.windows["1.2.3.4"].start = time.Now().Add(-2 * time.Minute)
		rl.mu.Unlock()
		if !rl.allow("1.2.3.4") {
			t.Fatal("a fresh window must allow requests again")
		}
	})
}

func TestRateLimiterSweepDropsStaleWindows(t *testing.T) {
	rl := newRateLimiter(10)
	defer rl.stop()

	rl.allow("1.2.3.4")
	rl.mu.Lock()
	rl.windows["1.2.3.4"].start = time.Now().Add(-11 * time.Minute)
	rl.mu.Unlock()

	rl.sweep()

	rl.mu.Lock()
	_, exists := rl.windows["1.2.3.4"]
	rl.mu.Unlock()
	if exists {
		t.Fatal("stale window must be swept")
	}
}
