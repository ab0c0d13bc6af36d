// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
	"github.com/taibuivan/stickynote/internal/platform/constants"
	"github.com/taibuivan/stickynote/internal/platform/ctxutil"
	"github.com/taibuivan/stickynote/internal/platform/respond"
)

// Decision is a limiter's verdict on one request.
type Decision struct {
	Allowed bool

	// Limit is the client's budget per window.
	Limit int

	// Remaining is what is left of the budget after this request.
	Remaining int

	// Reset is how long until the budget is fully restored.
	Reset time.Duration

	// RetryAfter is how long a refused client should wait. Zero when allowed.
	RetryAfter time.Duration
}

// Limiter decides whether the client identified by key may proceed.
//
// A non-nil error means the decision could not be made.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RateLimit refuses clients that exceed the limiter's budget with 429 and a
// Retry-After header. Clients are keyed by [RealIP]. Every decided response
// carries the RateLimit-Limit, RateLimit-Remaining and RateLimit-Reset headers.
//
// A limiter failure lets the request through; losing Redis must not take the
// API down with it.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			decision, err := limiter.Allow(request.Context(), RealIP(request))
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "rate_limit_unavailable",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			header.Set(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			header.Set(constants.HeaderRateLimitReset, strconv.Itoa(ceilSeconds(decision.Reset)))

			if !decision.Allowed {
				respond.Error(writer, request, apperr.RateLimited(max(1, ceilSeconds(decision.RetryAfter))))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// ceilSeconds rounds up to whole seconds.
func ceilSeconds(wait time.Duration) int {
	return int(math.Ceil(wait.Seconds()))
}

// # In-Memory Token Bucket

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-process token bucket per client. It allows a burst of
// maxRequests, refilled evenly over window.
type MemoryLimiter struct {
	mu          sync.Mutex
	clients     map[string]*rateLimitClient
	refill      rate.Limit
	maxRequests int
}

// NewMemoryLimiter creates a [MemoryLimiter] and starts a janitor that drops
// idle clients until ctx is cancelled.
func NewMemoryLimiter(ctx context.Context, maxRequests int, window time.Duration) *MemoryLimiter {
	limiter := &MemoryLimiter{
		clients:     make(map[string]*rateLimitClient),
		refill:      rate.Every(window / time.Duration(maxRequests)),
		maxRequests: maxRequests,
	}

	go limiter.cleanup(ctx)

	return limiter
}

// Allow implements [Limiter].
func (limiter *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := time.Now()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[key]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.refill, limiter.maxRequests)}
		limiter.clients[key] = client
	}
	client.lastSeen = now

	decision := Decision{Allowed: true, Limit: limiter.maxRequests}

	reservation := client.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		decision.Allowed = false
		decision.RetryAfter = delay
	}

	tokens := client.limiter.TokensAt(now)
	decision.Remaining = max(0, int(math.Floor(tokens)))
	missing := float64(limiter.maxRequests) - tokens
	decision.Reset = time.Duration(missing / float64(limiter.refill) * float64(time.Second))

	return decision, nil
}

func (limiter *MemoryLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.mu.Lock()
			for key, client := range limiter.clients {
				if time.Since(client.lastSeen) > constants.RateLimitClientTTL {
					delete(limiter.clients, key)
				}
			}
			limiter.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// # Redis Fixed Window

// RedisLimiter counts requests per client in a fixed window shared by every
// API replica.
type RedisLimiter struct {
	client      redis.Cmdable
	maxRequests int64
	window      time.Duration
}

// NewRedisLimiter creates a [RedisLimiter].
func NewRedisLimiter(client redis.Cmdable, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

// Allow implements [Limiter].
func (limiter *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := constants.RedisPrefixRateLimit + key

	var count *redis.IntCmd
	var remaining *redis.DurationCmd
	_, err := limiter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, redisKey)
		remaining = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis pipeline failed: %w", err)
	}

	// First hit of the window: the counter was just created without a TTL.
	ttl := remaining.Val()
	if ttl < 0 {
		if err := limiter.client.PExpire(ctx, redisKey, limiter.window).Err(); err != nil {
			return Decision{}, fmt.Errorf("ratelimit: redis expire failed: %w", err)
		}
		ttl = limiter.window
	}

	decision := Decision{
		Allowed:   count.Val() <= limiter.maxRequests,
		Limit:     int(limiter.maxRequests),
		Remaining: int(max(0, limiter.maxRequests-count.Val())),
		Reset:     ttl,
	}
	if !decision.Allowed {
		decision.RetryAfter = ttl
	}

	return decision, nil
}
