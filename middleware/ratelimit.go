package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/pipeline/core/handler"
	"github.com/dmitrymomot/pipeline/core/response"
	"github.com/dmitrymomot/pipeline/pkg/clientip"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx *handler.Context) bool
	// Rate is the number of requests per second allowed for one key (required)
	Rate float64
	// Burst is the bucket capacity (default: 1)
	Burst int
	// KeyExtractor defines how to extract the rate limiting key from requests (default: client IP)
	KeyExtractor func(ctx *handler.Context) string
	// ErrorHandler builds the error returned for rejected requests (default: 429 Too Many Requests)
	ErrorHandler func(ctx *handler.Context, retryAfter time.Duration) error
	// SetHeaders determines whether to include rate limit information in response headers
	SetHeaders bool
	// CleanupInterval is how often idle limiters are pruned (default: 1m)
	CleanupInterval time.Duration
	// MaxIdle removes limiters not seen for longer than this (default: 5m)
	MaxIdle time.Duration
}

// RateLimit creates a per-key token bucket middleware.
// Panics if Rate is not positive.
//
//	app.Use(middleware.RateLimit(middleware.RateLimitConfig{
//		Rate:       10,
//		Burst:      20,
//		SetHeaders: true,
//	}))
//
// Rejected requests never reach the next stage. The Retry-After header is
// always set on rejection; X-RateLimit-Limit and X-RateLimit-Remaining are
// added when SetHeaders is true.
func RateLimit(cfg RateLimitConfig) handler.Middleware {
	if cfg.Rate <= 0 {
		panic("ratelimit middleware: rate must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx *handler.Context) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return clientip.GetIP(ctx.Request())
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ *handler.Context, retryAfter time.Duration) error {
			return response.ErrTooManyRequests.WithDetails(map[string]any{
				"retry_after": retryAfterSeconds(retryAfter),
			})
		}
	}

	store := newLimiterStore(rate.Limit(cfg.Rate), cfg.Burst, cfg.CleanupInterval, cfg.MaxIdle)

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx *handler.Context) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			now := time.Now()
			lim := store.get(cfg.KeyExtractor(ctx), now)

			header := ctx.ResponseWriter().Header()
			if cfg.SetHeaders {
				header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			}

			res := lim.ReserveN(now, 1)
			if delay := res.DelayFrom(now); !res.OK() || delay > 0 {
				res.CancelAt(now)
				if cfg.SetHeaders {
					header.Set("X-RateLimit-Remaining", "0")
				}
				header.Set("Retry-After", retryAfterSeconds(delay))
				return cfg.ErrorHandler(ctx, delay)
			}

			if cfg.SetHeaders {
				remaining := int(math.Floor(lim.TokensAt(now)))
				header.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, remaining)))
			}

			return next(ctx)
		}
	}
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(1, int(math.Ceil(d.Seconds()))))
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per key and lazily prunes idle ones.
type limiterStore struct {
	mu              sync.Mutex
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration
	maxIdle         time.Duration
	lastCleanup     time.Time
	limiters        map[string]*limiterEntry
}

func newLimiterStore(limit rate.Limit, burst int, cleanupInterval, maxIdle time.Duration) *limiterStore {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}
	return &limiterStore{
		limit:           limit,
		burst:           burst,
		cleanupInterval: cleanupInterval,
		maxIdle:         maxIdle,
		lastCleanup:     time.Now(),
		limiters:        make(map[string]*limiterEntry),
	}
}

func (s *limiterStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastCleanup) >= s.cleanupInterval {
		for k, e := range s.limiters {
			if now.Sub(e.lastSeen) > s.maxIdle {
				delete(s.limiters, k)
			}
		}
		s.lastCleanup = now
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}
