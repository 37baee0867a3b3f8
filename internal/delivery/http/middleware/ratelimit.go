package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxLocalLimiters = 10000

// WindowCounter counts hits in a fixed window shared across instances.
// ok=false means the store could not answer.
type WindowCounter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, ok bool)
}

type KeyFunc func(c fiber.Ctx) string

// RateLimiter allows limit requests per window per key. It uses the shared
// counter when available and a per-process token bucket otherwise.
type RateLimiter struct {
	name    string
	limit   int
	window  time.Duration
	counter WindowCounter
	logger  *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(name string, limit int, window time.Duration, counter WindowCounter, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		name:     name,
		limit:    limit,
		window:   window,
		counter:  counter,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl == nil || rl.limit <= 0 || key == "" {
		return true
	}
	fullKey := "ratelimit:" + rl.name + ":" + key
	if rl.counter != nil {
		if allowed, ok := rl.counter.Allow(ctx, fullKey, rl.limit, rl.window); ok {
			return allowed
		}
	}
	return rl.local(fullKey).Allow()
}

func (rl *RateLimiter) local(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) > maxLocalLimiters {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := rl.limiters[key]
	if !ok {
		every := rl.window / time.Duration(rl.limit)
		l = rate.NewLimiter(rate.Every(every), rl.limit)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Middleware(key KeyFunc) fiber.Handler {
	return func(c fiber.Ctx) error {
		k := key(c)
		if rl.Allow(c.Context(), k) {
			return c.Next()
		}
		rl.logger.Warn("rate limit exceeded",
			zap.String("limiter", rl.name),
			zap.String("key", k),
			zap.String("path", c.Path()),
		)
		c.Set("Retry-After", retryAfter(rl.window))
		return NewAppError(fiber.StatusTooManyRequests, "Too many requests, try again later", nil, nil)
	}
}

func ByIP(c fiber.Ctx) string {
	return c.IP()
}

// ByCallerAndParam keys on the authenticated user and a route parameter,
// e.g. one applicant applying to one job.
func ByCallerAndParam(param string) KeyFunc {
	return func(c fiber.Ctx) string {
		return CallerFrom(c).UserID().String() + ":" + c.Params(param)
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window / time.Second)
	if secs <= 0 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
