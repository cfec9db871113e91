package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type client struct {
	connections int
	tokens      int
	lastRefill  time.Time
}

// IPRateLimiter tracks per-IP connection counts and message rates with a
// token bucket per IP.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client

	maxConnsPerIP int
	msgRate       int
	msgWindow     time.Duration
}

// NewIPRateLimiter creates a rate limiter.
//   - maxConnsPerIP: max simultaneous WebSocket connections per IP
//   - msgRate: max messages allowed per msgWindow
//   - msgWindow: time window for message rate
func NewIPRateLimiter(maxConnsPerIP, msgRate int, msgWindow time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		clients:       make(map[string]*client),
		maxConnsPerIP: maxConnsPerIP,
		msgRate:       msgRate,
		msgWindow:     msgWindow,
	}
	go rl.cleanup()
	return rl
}

// ConnectAllowed checks if an IP can open a new connection; if allowed
// it increments the connection count.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		rl.clients[ip] = &client{
			connections: 1,
			tokens:      rl.msgRate,
			lastRefill:  time.Now(),
		}
		return true
	}
	if c.connections >= rl.maxConnsPerIP {
		return false
	}
	c.connections++
	return true
}

// Disconnect decrements the connection count for an IP.
func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		return
	}
	c.connections--
	if c.connections < 0 {
		c.connections = 0
	}
}

// MessageAllowed checks if a message from this IP is within rate limits,
// refilling msgRate tokens per msgWindow.
func (rl *IPRateLimiter) MessageAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		rl.clients[ip] = &client{
			tokens:     rl.msgRate - 1,
			lastRefill: time.Now(),
		}
		return true
	}

	now := time.Now()
	elapsed := now.Sub(c.lastRefill)
	if elapsed >= rl.msgWindow {
		windows := int(elapsed / rl.msgWindow)
		c.tokens += windows * rl.msgRate
		if c.tokens > rl.msgRate {
			c.tokens = rl.msgRate
		}
		c.lastRefill = c.lastRefill.Add(time.Duration(windows) * rl.msgWindow)
	}

	if c.tokens <= 0 {
		return false
	}
	c.tokens--
	return true
}

// cleanup removes idle entries every 5 minutes.
func (rl *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if c.connections <= 0 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RealIP extracts the client IP, honoring X-Forwarded-For behind a
// reverse proxy.
func (rl *IPRateLimiter) RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if comma := strings.Index(xff, ","); comma > 0 {
			return strings.TrimSpace(xff[:comma])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
