// Package middleware provides the Gin middleware chain: request logging,
// panic recovery, CORS, bearer authentication and rate limiting.
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/lezzetli/v1/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ContextKeyUID is the Gin context key holding the authenticated uid.
const ContextKeyUID = "uid"

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Recovery converts panics into a 500 envelope instead of a dropped
// connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("recovery")
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				appErr := errors.NewInternalError("")
				c.AbortWithStatusJSON(appErr.StatusCode(),
					errors.ToErrorResponse(appErr, requestID(c)))
			}
		}()
		c.Next()
	}
}

// CORS applies the allowed-origins policy.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; allowAll || ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireAuth resolves the bearer token and stores the uid in the
// context. Requests without a valid token are rejected.
func RequireAuth(identity outbound.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			appErr := errors.NewLoginRequiredError("access this resource")
			c.AbortWithStatusJSON(appErr.StatusCode(),
				errors.ToErrorResponse(appErr, requestID(c)))
			return
		}

		uid, err := identity.ResolveToken(c.Request.Context(), token)
		if err != nil {
			appErr := errors.Wrap(err, "token resolution failed")
			c.AbortWithStatusJSON(appErr.StatusCode(),
				errors.ToErrorResponse(appErr, requestID(c)))
			return
		}

		c.Set(ContextKeyUID, uid)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but lets anonymous
// requests through.
func OptionalAuth(identity outbound.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if uid, err := identity.ResolveToken(c.Request.Context(), token); err == nil {
				c.Set(ContextKeyUID, uid)
			}
		}
		c.Next()
	}
}

// UID returns the authenticated uid from the context, or empty.
func UID(c *gin.Context) string {
	return c.GetString(ContextKeyUID)
}

// RateLimit applies a per-client token bucket. Used on the AI routes,
// whose upstream quota is the scarce resource.
func RateLimit(requestsPerMin, burst int, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("rate-limit")
	limiters := struct {
		sync.Mutex
		byClient map[string]*rate.Limiter
	}{byClient: make(map[string]*rate.Limiter)}

	limit := rate.Limit(float64(requestsPerMin) / 60.0)

	return func(c *gin.Context) {
		key := UID(c)
		if key == "" {
			key = c.ClientIP()
		}

		limiters.Lock()
		limiter, ok := limiters.byClient[key]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters.byClient[key] = limiter
		}
		limiters.Unlock()

		if !limiter.Allow() {
			log.Warn("request rate limited", zap.String("client", key))
			appErr := errors.New(errors.CodeTooManyRequests, "Too many requests",
				"Slow down and try again shortly")
			c.AbortWithStatusJSON(appErr.StatusCode(),
				errors.ToErrorResponse(appErr, requestID(c)))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func requestID(c *gin.Context) string {
	return c.GetHeader("X-Request-ID")
}
