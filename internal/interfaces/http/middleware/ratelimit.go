package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/watchlist/backend/internal/infrastructure/cache"
	"github.com/watchlist/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(store cache.RateLimitStore, logger *zap.Logger) gin.HandlerFunc {
	return RateLimitByKey(store, logger, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey returns a rate limiting middleware with a custom key extractor.
// When the store fails the request is let through.
func RateLimitByKey(store cache.RateLimitStore, logger *zap.Logger, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := store.Allow(c.Request.Context(), keyFunc(c))
		if err != nil {
			logger.Warn("Rate limit store unavailable, allowing request",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.ResetIn.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewMessageResponse(dto.MsgRateLimited))
			return
		}

		c.Next()
	}
}
