package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limitless-club/booking/pkg/response"
)

// Counter counts hits of key inside a fixed window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is a fixed-window counter shared by every instance.
type RedisCounter struct {
	client redis.Cmdable
}

// NewRedisCounter creates a counter on client.
func NewRedisCounter(client redis.Cmdable) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr implements Counter. The first hit of a window sets its expiry.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// MemoryCounter is an in-process fixed-window counter.
type MemoryCounter struct {
	mu    sync.Mutex
	state map[string]*window
	now   func() time.Time
}

type window struct {
	count int64
	reset time.Time
}

// NewMemoryCounter creates an in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{state: make(map[string]*window), now: time.Now}
}

// Incr implements Counter.
func (m *MemoryCounter) Incr(_ context.Context, key string, d time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	w, ok := m.state[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(d)}
		m.state[key] = w
	}
	w.count++
	// drop expired windows now and then so the map stays small
	if len(m.state) > 1024 {
		for k, v := range m.state {
			if !now.Before(v.reset) {
				delete(m.state, k)
			}
		}
	}
	return w.count, nil
}

// RateLimit allows limit requests per client IP per window. When the
// primary counter errors the fallback is used; if that errors too the
// request is let through.
func RateLimit(name string, limit int, window time.Duration, primary, fallback Counter, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		key := "ratelimit:" + name + ":" + c.ClientIP()
		n, err := incr(c.Request.Context(), key, window, primary, fallback)
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.String("limiter", name), zap.Error(err))
			c.Next()
			return
		}
		if n > int64(limit) {
			logger.Warn("rate limited", zap.String("limiter", name), zap.String("client_ip", c.ClientIP()))
			response.TooManyRequests(c, "too many attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

func incr(ctx context.Context, key string, d time.Duration, primary, fallback Counter) (int64, error) {
	if primary != nil {
		n, err := primary.Incr(ctx, key, d)
		if err == nil || fallback == nil {
			return n, err
		}
	}
	if fallback == nil {
		return 0, nil
	}
	return fallback.Incr(ctx, key, d)
}
