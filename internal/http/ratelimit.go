package http

import (
	"sync"
	"time"
)

// rateLimiter caps mutating requests per client to a configured budget per
// one-minute window. Windows are fixed, not sliding: the first request
// opens a window and the budget resets a minute after it opened.
type rateLimiter struct {
	mu      sync.Mutex
	perMin  int
	windows map[string]*requestWindow

	done chan struct{}
	once sync.Once
}

type requestWindow struct {
	start time.Time
	count int
}

func newRateLimiter(perMinute int) *rateLimiter {
	rl := &rateLimiter{
		perMin:  perMinute,
		windows: make(map[string]*requestWindow),
		done:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// allow records a request for the client and reports whether it fits the
// current window's budget.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[clientIP]
	if !ok || now.Sub(w.start) >= time.Minute {
		rl.windows[clientIP] = &requestWindow{start: now, count: 1}
		return true
	}
	w.count++
	return w.count <= rl.perMin
}

// janitor periodically drops windows idle long enough that their budget has
// long since reset, so one-off clients do not accumulate.
func (rl *rateLimiter) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.done:
			return
		}
	}
}

func (rl *rateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, w := range rl.windows {
		if w.start.Before(cutoff) {
			delete(rl.windows, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.once.Do(func() { close(rl.done) })
}
