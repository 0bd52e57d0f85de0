package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	sessionKey      = "session"
)

// defaultLimiterTTL is how long an idle client bucket is kept
const defaultLimiterTTL = 5 * time.Minute

// CORSMiddleware handles CORS for the browser front end
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		// Trailing * matches any suffix, e.g. http://localhost:*
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// RequestIDMiddleware reuses an incoming X-Request-ID or generates one, and
// attaches it to the request context for logging
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))

		c.Next()
	}
}

// LoggerMiddleware emits one structured log line per request
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			logger.Error(ctx, "http_request", kv...)
		case status >= 400:
			logger.Warn(ctx, "http_request", kv...)
		default:
			logger.Info(ctx, "http_request", kv...)
		}
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
	})
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than the TTL are evicted.
type IPRateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*limiterEntry
	rate  rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

// NewIPRateLimiter allows perMinute requests per IP, with bursts up to
// perMinute. Idle buckets are swept every ttl until ctx is done.
func NewIPRateLimiter(ctx context.Context, perMinute int, ttl time.Duration) *IPRateLimiter {
	if ttl <= 0 {
		ttl = defaultLimiterTTL
	}
	l := &IPRateLimiter{
		ips:   make(map[string]*limiterEntry),
		rate:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		ttl:   ttl,
		now:   time.Now,
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.evictStale()
			}
		}
	}()

	return l
}

// Limiter returns the limiter for ip, creating it on first use
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.ips[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.ips[ip] = entry
	}
	entry.lastSeen = l.now()
	return entry.limiter
}

// Size returns the number of tracked client IPs
func (l *IPRateLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// evictStale drops buckets not used within the TTL and returns how many
func (l *IPRateLimiter) evictStale() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	evicted := 0
	for ip, entry := range l.ips {
		if now.Sub(entry.lastSeen) > l.ttl {
			delete(l.ips, ip)
			evicted++
		}
	}
	return evicted
}

// RateLimitMiddleware rejects requests once a client IP exhausts its bucket
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}

// Authorizer verifies tokens and checks role permissions
type Authorizer interface {
	Authenticate(token string) (domain.Session, error)
	Authorize(session domain.Session, perm domain.Permission) error
}

// AuthMiddleware requires a valid bearer token and stores its session
func AuthMiddleware(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			abortWithError(c, domain.ErrUnauthorized)
			return
		}

		session, err := auth.Authenticate(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(sessionKey, session)
		ctx := logger.WithLogger(c.Request.Context(), logger.FromContext(c.Request.Context()).With("user", session.Username))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePermission rejects sessions whose role lacks perm
func RequirePermission(auth Authorizer, perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(currentSession(c), perm); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// AdminOnly rejects every role but admin
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).Role != domain.RoleAdmin {
			abortWithError(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// currentSession returns the session set by AuthMiddleware
func currentSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

func abortWithError(c *gin.Context, err error) {
	respondError(c, err)
	c.Abort()
}
