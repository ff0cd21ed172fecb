package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTimeout is how long a client may stay silent before its
// limiter is dropped.
const DefaultIdleTimeout = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client address gets its own limiter. Limiters of clients idle for
// IdleTimeout are evicted; a client returning afterwards starts with a full
// bucket.
type ClientLimiter struct {
	IdleTimeout time.Duration

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
	rps       float64
	burst     int
}

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with bursts of up to burst requests. A burst below 1 is
// raised to 1.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		IdleTimeout: DefaultIdleTimeout,
		clients:     make(map[string]*client),
		rps:         rps,
		burst:       max(burst, 1),
	}
}

// Allow reports whether addr may make a request now.
func (l *ClientLimiter) Allow(addr string) bool {
	now := time.Now()

	l.mu.Lock()
	l.evict(now)
	c, ok := l.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.clients[addr] = c
	}
	c.seen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked clients.
func (l *ClientLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// evict drops idle clients, at most once per IdleTimeout.
// The caller must hold l.mu.
func (l *ClientLimiter) evict(now time.Time) {
	if l.IdleTimeout <= 0 || now.Sub(l.lastSweep) < l.IdleTimeout {
		return
	}
	l.lastSweep = now
	for addr, c := range l.clients {
		if now.Sub(c.seen) >= l.IdleTimeout {
			delete(l.clients, addr)
		}
	}
}

// Middleware rejects requests over the client's rate with 429.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientAddr(r)) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
