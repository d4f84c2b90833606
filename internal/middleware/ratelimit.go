package middleware

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

// Counter increments a counter that expires after window.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a Counter backed by INCR and EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return n, nil
}

// RateLimit allows limit requests per caller in each fixed window. Callers
// are identified by user ID, falling back to the client IP. When the
// counter is unavailable requests are let through.
func RateLimit(counter Counter, name string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if counter == nil || limit <= 0 || window <= 0 {
			return c.Next()
		}

		caller := c.IP()
		if userID, ok := GetCurrentUserID(c); ok {
			caller = userID.String()
		}

		now := time.Now()
		windowStart := now.Truncate(window)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", name, caller, windowStart.Unix())

		n, err := counter.Increment(c.UserContext(), key, window)
		if err != nil {
			log.Printf("[RateLimit] counter unavailable, allowing request: %v", err)
			return c.Next()
		}

		remaining := int64(limit) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if n > int64(limit) {
			retryAfter := int(windowStart.Add(window).Sub(now).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, try again later")
		}

		return c.Next()
	}
}
