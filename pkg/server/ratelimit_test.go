package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ironfrontier/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(rps float64, burst int) *RateLimiter {
	cfg := &config.Config{
		RateLimitRequestsPerSecond: rps,
		RateLimitBurst:             burst,
		RateLimitCleanupInterval:   time.Minute,
	}
	return NewRateLimiter(cfg)
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := newTestRateLimiter(1, 3)
	defer rl.Close()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiterTracksIPsIndependently(t *testing.T) {
	rl := newTestRateLimiter(1, 1)
	defer rl.Close()

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))
	assert.False(t, rl.Allow("1.1.1.1"))
}

func TestRateLimiterCleanupRemovesStaleEntries(t *testing.T) {
	rl := newTestRateLimiter(1, 1)
	defer rl.Close()

	rl.Allow("3.3.3.3")
	require.Len(t, rl.limiters, 1)

	rl.limiters["3.3.3.3"].lastAccess = time.Now().Add(-time.Hour)
	rl.cleanup()

	assert.Empty(t, rl.limiters)
}

func TestRateLimiterGetStats(t *testing.T) {
	rl := newTestRateLimiter(1, 1)
	defer rl.Close()

	rl.Allow("4.4.4.4")
	stats := rl.GetStats()
	assert.Equal(t, 1, stats.ActiveLimiters)
}

func TestRateLimitingMiddlewareRejectsOverLimit(t *testing.T) {
	rl := newTestRateLimiter(1, 1)
	defer rl.Close()

	handler := RateLimitingMiddleware(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "5.5.5.5:1234"

	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req)
	assert.Equal(t, http.StatusOK, rec1.Code)

	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

func TestRateLimitingMiddlewarePassesThroughWhenNil(t *testing.T) {
	handler := RateLimitingMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
