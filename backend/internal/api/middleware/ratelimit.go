package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = time.Hour

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterStore keeps one token bucket per client key.
type RateLimiterStore struct {
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
	mutex    sync.Mutex
	logger   *zap.SugaredLogger
}

// NewRateLimiterStore creates a store allowing rps requests per second per key
// with bursts up to burst.
func NewRateLimiterStore(rps float64, burst int, logger *zap.SugaredLogger) *RateLimiterStore {
	return &RateLimiterStore{
		limit:    rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		logger:   logger,
	}
}

// GetLimiter gets or creates the limiter for key
func (s *RateLimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// Len is the number of tracked keys.
func (s *RateLimiterStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.visitors)
}

// Prune drops limiters idle for longer than ttl.
func (s *RateLimiterStore) Prune(ttl time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, v := range s.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(s.visitors, key)
		}
	}
}

// Cleanup prunes idle limiters every interval until ctx is done.
func (s *RateLimiterStore) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Prune(limiterIdleTTL)
		}
	}
}

// RateLimit rejects requests from a client IP once its bucket is empty.
func RateLimit(store *RateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		limiter := store.GetLimiter(key)

		if !limiter.Allow() {
			store.logger.Warnw("Rate limit exceeded", "ip", key, "request_id", GetRequestID(c))
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
