package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window counter shared by every portal instance.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewForgotPasswordLimiter creates the limiter for credential-recovery requests.
func NewForgotPasswordLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, prefix: forgotPasswordLimiter, limit: limit, window: window}
}

// Allow consumes one slot for subject and reports whether it was within the limit.
func (r *RateLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	subject = strings.TrimSpace(subject)
	if r == nil || r.client == nil || r.limit <= 0 || subject == "" {
		return true, nil
	}

	windowMs := r.window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	key := fmt.Sprintf("%s:%s", r.prefix, subject)
	count, err := fixedWindowScript.Run(ctx, r.client, []string{key}, windowMs).Int64()
	if err != nil {
		return false, err
	}

	return count <= int64(r.limit), nil
}
