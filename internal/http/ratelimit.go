package http

import (
	"sync"
	"time"
)

// writeLimiter gives each client a budget of state-changing requests per
// fixed window. Reads are never counted.
type writeLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	clients   map[string]*writeWindow
	lastSweep time.Time
}

type writeWindow struct {
	start  time.Time
	writes int
}

// newWriteLimiter allows limit writes per client per minute. A limit of zero
// or less disables the check.
func newWriteLimiter(limit int) *writeLimiter {
	return &writeLimiter{
		limit:   limit,
		window:  time.Minute,
		now:     time.Now,
		clients: make(map[string]*writeWindow),
	}
}

// allow records one write from clientIP. Once the budget of the current
// window is spent it returns false and the time left until the window resets.
func (l *writeLimiter) allow(clientIP string) (bool, time.Duration) {
	if l.limit <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.clients[clientIP]
	if !ok || now.Sub(w.start) >= l.window {
		l.clients[clientIP] = &writeWindow{start: now, writes: 1}
		return true, 0
	}
	if w.writes >= l.limit {
		return false, w.start.Add(l.window).Sub(now)
	}
	w.writes++
	return true, 0
}

// sweep forgets clients whose window ended. It runs at most once per window.
func (l *writeLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for ip, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, ip)
		}
	}
}

// retryAfterSeconds rounds d up to whole seconds for the Retry-After header.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	return max(secs, 1)
}
