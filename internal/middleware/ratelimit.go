package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/cache"
	"internship_backend/internal/logger"
	"internship_backend/pkg/apperrors"
)

// Limiter - счетчик запросов клиента
type Limiter interface {
	Allow(ctx context.Context, key string) (cache.LimitResult, error)
}

// RateLimitMiddleware ограничивает число запросов с одного IP.
// Без limiter (Redis не настроен) пропускает все запросы.
// Если Redis недоступен, запрос пропускается.
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "rate limiter unavailable", err)
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds()))))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds()))))
			logger.CtxWarn(c.Request.Context(), "rate limit exceeded", "client_ip", c.ClientIP())
			abortWithError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
