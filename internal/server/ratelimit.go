package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a per-caller sliding window. Requests over the limit are
// rejected immediately; nothing queues.
type rateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	limit     int
	callers   map[string][]time.Time
	clock     func() time.Time
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration, clock func() time.Time) *rateLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &rateLimiter{
		window:  window,
		limit:   limit,
		callers: make(map[string][]time.Time),
		clock:   clock,
	}
}

// allow records one request for the caller and reports whether it fits in
// the window.
func (rl *rateLimiter) allow(caller string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock()
	cutoff := now.Add(-rl.window)
	if now.Sub(rl.lastSweep) > rl.window {
		rl.sweepLocked(cutoff)
		rl.lastSweep = now
	}

	kept := rl.callers[caller][:0]
	for _, t := range rl.callers[caller] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= rl.limit {
		rl.callers[caller] = kept
		return false
	}
	rl.callers[caller] = append(kept, now)
	return true
}

// sweepLocked drops callers whose newest request has aged out of the
// window, so the map does not accumulate one entry per distinct IP for
// the life of the server. Timestamps append in clock order, so the last
// element is the newest.
func (rl *rateLimiter) sweepLocked(cutoff time.Time) {
	for caller, times := range rl.callers {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.callers, caller)
		}
	}
}

// callerKey identifies a caller by remote IP, ignoring the ephemeral port.
func callerKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
