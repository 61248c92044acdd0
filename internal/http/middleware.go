package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/example/trip-tracker/internal/logging"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns every request an identifier, attaches a request-scoped logger
// to its context, and logs the outcome once the handler chain finishes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	base = defaultLogger(base)

	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		logger := base.With(
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		ctx := logging.ContextWithLogger(c.Request.Context(), logger)
		ctx = ContextWithRequestID(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.Info("request",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		)
	}
}

// RateLimitConfig bounds how often one client may call the generate endpoints.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// clientLimiters hands out one token bucket per client IP.
type clientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func (l *clientLimiters) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[client]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = limiter
	}
	return limiter
}

// RateLimit rejects requests beyond the configured per-client rate with 429.
func RateLimit(cfg RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limiters := &clientLimiters{
		limit:    rate.Limit(cfg.RequestsPerSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
	resp := newResponder(logger)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			resp.writeJSON(c, http.StatusTooManyRequests, errorResponse{
				ErrorCode: "RATE_LIMITED",
				Message:   "Too many tracker requests. Wait a moment and try again.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
