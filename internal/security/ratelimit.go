package security

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a token bucket limiter keyed by client. Login and other
// abuse-prone endpoints wrap themselves in it; each client gets rate
// tokens per window.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	now     func() time.Time

	lastSweep time.Time
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from the given client may proceed
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweepLocked(now)

	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[client] = b
	}
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked drops buckets idle for two windows. Running it inline on
// Allow keeps the limiter goroutine-free.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for client, b := range rl.buckets {
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, client)
		}
	}
}

// ClientIP extracts the caller's address, honoring the forwarding
// headers a reverse proxy sets
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
