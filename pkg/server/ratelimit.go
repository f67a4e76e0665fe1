package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ironfrontier/pkg/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimiter manages per-IP rate limiting using a token bucket algorithm.
// It tracks rate limiters for each client IP and provides automatic cleanup
// of inactive limiters to prevent memory leaks.
type RateLimiter struct {
	limiters          map[string]*rateLimiterEntry
	mu                sync.RWMutex
	requestsPerSecond rate.Limit
	burst             int
	cleanupInterval   time.Duration
	maxAge            time.Duration
	ctx               context.Context
	cancel            context.CancelFunc
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewRateLimiter creates a new RateLimiter from cfg and starts a background
// goroutine that periodically cleans up unused limiters.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		limiters:          make(map[string]*rateLimiterEntry),
		requestsPerSecond: rate.Limit(cfg.RateLimitRequestsPerSecond),
		burst:             cfg.RateLimitBurst,
		cleanupInterval:   cfg.RateLimitCleanupInterval,
		maxAge:            cfg.RateLimitCleanupInterval * 5,
		ctx:               ctx,
		cancel:            cancel,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow checks if a request from the given IP address should be allowed,
// creating a new limiter for unknown IPs.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.requestsPerSecond, rl.burst), lastAccess: time.Now()}
		rl.limiters[ip] = entry
	} else {
		entry.lastAccess = time.Now()
	}

	return entry.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	var removed int

	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > rl.maxAge {
			delete(rl.limiters, ip)
			removed++
		}
	}

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed_limiters": removed,
			"active_limiters":  len(rl.limiters),
		}).Debug("cleaned up expired rate limiters")
	}
}

// Close stops the background cleanup goroutine.
func (rl *RateLimiter) Close() {
	if rl.cancel != nil {
		rl.cancel()
	}
}

// RateLimiterStats reports current rate limiter statistics.
type RateLimiterStats struct {
	ActiveLimiters int `json:"active_limiters"`
}

// GetStats returns current rate limiter statistics.
func (rl *RateLimiter) GetStats() RateLimiterStats {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return RateLimiterStats{ActiveLimiters: len(rl.limiters)}
}

// RateLimitingMiddleware creates HTTP middleware enforcing per-IP rate
// limiting. Requests over the limit receive 429 Too Many Requests.
func RateLimitingMiddleware(rateLimiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rateLimiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)

			if !rateLimiter.Allow(clientIP) {
				logger := getLoggerFromContext(r.Context())
				logger.WithFields(logrus.Fields{
					"client_ip": clientIP,
					"method":    r.Method,
					"path":      r.URL.Path,
				}).Warn("request rate limited")

				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
