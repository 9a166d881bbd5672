package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter implements a token bucket per caller. Anonymous endpoints key
// callers by IP; authenticated endpoints key by the signed-in phone number so
// one device cannot flood on behalf of many.
type RateLimiter struct {
	callers map[string]*caller
	mu      sync.Mutex
	rate    int           // requests per window
	window  time.Duration // time window
	keyFor  func(echo.Context) string
}

type caller struct {
	tokens     int
	lastSeen   time.Time
	blocked    bool
	blockUntil time.Time
}

// NewIPRateLimiter limits by client IP, for routes in front of auth.
func NewIPRateLimiter(rate int, window time.Duration) *RateLimiter {
	return newRateLimiter(rate, window, func(c echo.Context) string {
		return c.RealIP()
	})
}

// NewUserRateLimiter limits by the authenticated phone number, falling back
// to the client IP when the identity is not on the context yet.
func NewUserRateLimiter(rate int, window time.Duration) *RateLimiter {
	return newRateLimiter(rate, window, func(c echo.Context) string {
		if phone, ok := c.Get("phone").(string); ok && phone != "" {
			return phone
		}
		return c.RealIP()
	})
}

func newRateLimiter(rate int, window time.Duration, keyFor func(echo.Context) string) *RateLimiter {
	rl := &RateLimiter{
		callers: make(map[string]*caller),
		rate:    rate,
		window:  window,
		keyFor:  keyFor,
	}

	// Cleanup goroutine
	go rl.cleanup()

	return rl
}

// Limit returns Echo middleware enforcing the limiter.
func (rl *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := rl.keyFor(c)

		allowed, resetTime := rl.allow(key)
		if !allowed {
			log.Printf("RATE LIMIT: Blocked request from %s (reset in %v)", key, time.Until(resetTime))

			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
				"error":       "Rate limit exceeded",
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
		}

		return next(c)
	}
}

// allow consumes a token for the key, blocking the caller for a full window
// once the bucket is empty.
func (rl *RateLimiter) allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	v, exists := rl.callers[key]
	if !exists {
		rl.callers[key] = &caller{
			tokens:   rl.rate - 1,
			lastSeen: now,
		}
		return true, time.Time{}
	}

	// Still in the block period
	if v.blocked && now.Before(v.blockUntil) {
		return false, v.blockUntil
	}

	if v.blocked {
		v.blocked = false
		v.tokens = rl.rate
	}

	// Refill tokens based on time passed
	tokensToAdd := int(now.Sub(v.lastSeen) / rl.window * time.Duration(rl.rate))
	v.tokens += tokensToAdd
	if v.tokens > rl.rate {
		v.tokens = rl.rate
	}
	v.lastSeen = now

	if v.tokens <= 0 {
		v.blocked = true
		v.blockUntil = now.Add(rl.window)
		return false, v.blockUntil
	}

	v.tokens--
	return true, time.Time{}
}

// cleanup removes callers not seen recently to prevent unbounded growth.
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Hour)

		rl.mu.Lock()
		now := time.Now()
		for key, v := range rl.callers {
			if now.Sub(v.lastSeen) > 2*time.Hour {
				delete(rl.callers, key)
			}
		}
		rl.mu.Unlock()
	}
}

var (
	// Login/register brute-force limiter: 5 attempts per minute per IP
	authLimiter = NewIPRateLimiter(5, time.Minute)

	// Alert broadcast limiter: 10 alerts per minute per phone. Generous so a
	// genuine emergency is never blocked, but a runaway client cannot flood
	// every contact's conversation.
	alertLimiter = NewUserRateLimiter(10, time.Minute)
)

func AuthRateLimit() echo.MiddlewareFunc {
	return authLimiter.Limit
}

func AlertRateLimit() echo.MiddlewareFunc {
	return alertLimiter.Limit
}
