package redisx

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/georgemunganga/kuber-inventory/internal/httpx"
	"github.com/redis/go-redis/v9"
)

// KeyRateLimit is rate:{scope}:{client ip}.
const KeyRateLimit = "rate:%s:%s"

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// RateLimiter is a fixed-window counter per client IP. With a nil client, or
// when Redis errors, requests pass through.
type RateLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int64
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, scope: scope, limit: int64(limit), window: window}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// hit counts one request and starts the window in the same MULTI, so a
// counter never outlives its window.
func (l *RateLimiter) hit(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rdb == nil || l.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key := fmt.Sprintf(KeyRateLimit, l.scope, clientIP(r))

		count, err := l.hit(ctx, key)
		if err != nil {
			log.Printf("redis: rate limit %s: %v", key, err)
			next.ServeHTTP(w, r)
			return
		}
		if count > l.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(l.window.Seconds())))
			httpx.Error(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
