// middleware/rate_limiter.go
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and route. Routes
// without an override share the default bucket.
type RateLimiter struct {
	visitors       map[string]*visitor
	blockedIPs     map[string]time.Time
	mu             sync.Mutex
	defaultLimit   endpointLimit
	blockDuration  time.Duration
	idleTTL        time.Duration
	endpointLimits map[string]endpointLimit
	now            func() time.Time
}

func NewRateLimiter() *RateLimiter {
	r := &RateLimiter{
		visitors:      make(map[string]*visitor),
		blockedIPs:    make(map[string]time.Time),
		defaultLimit:  endpointLimit{limit: rate.Every(100 * time.Millisecond), burst: 20},
		blockDuration: 5 * time.Minute,
		idleTTL:       15 * time.Minute,
		now:           time.Now,
		endpointLimits: map[string]endpointLimit{
			// credential guessing
			"/api/admin/login":      {limit: rate.Every(2 * time.Second), burst: 5},
			"/api/admin/verify-otp": {limit: rate.Every(2 * time.Second), burst: 5},
			// form spam
			"/api/public/intake":                    {limit: rate.Every(time.Second), burst: 10},
			"/api/public/comprehensive-eligibility": {limit: rate.Every(time.Second), burst: 10},
		},
	}
	return r
}

// SetEndpointLimit overrides the bucket for a registered route path.
func (r *RateLimiter) SetEndpointLimit(path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[path] = endpointLimit{limit: limit, burst: burst}
}

// Cleanup drops idle visitors and expired blocks until ctx ends.
func (r *RateLimiter) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for ip, until := range r.blockedIPs {
		if now.After(until) {
			delete(r.blockedIPs, ip)
		}
	}
	for key, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.visitors, key)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			path := c.Path()

			allowed, retryAfter := r.allow(ip, path)
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"message":    "Too many requests from this IP, please try again later",
					"retryAfter": retryAfter.Format(time.RFC3339),
				})
			}
			return next(c)
		}
	}
}

func (r *RateLimiter) allow(ip, path string) (bool, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if until, blocked := r.blockedIPs[ip]; blocked {
		if now.Before(until) {
			return false, until
		}
		delete(r.blockedIPs, ip)
		r.resetVisitor(ip)
	}

	lim, ok := r.endpointLimits[path]
	key := ip
	if ok {
		key = ip + " " + path
	} else {
		lim = r.defaultLimit
	}

	v, exists := r.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(lim.limit, lim.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		until := now.Add(r.blockDuration)
		r.blockedIPs[ip] = until
		return false, until
	}
	return true, time.Time{}
}

func (r *RateLimiter) resetVisitor(ip string) {
	delete(r.visitors, ip)
	for path := range r.endpointLimits {
		delete(r.visitors, ip+" "+path)
	}
}
