package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internal/logger"
	"internship_backend/pkg/apperrors"
	"internship_backend/pkg/contextkeys"
)

const RequestIDHeader = "X-Request-ID"

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// LoggingMiddleware пишет одну запись на запрос; уровень зависит от статуса.
// Проверки /health пишутся на уровне debug.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("size_bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		log := logger.FromContext(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("http request failed", fields...)
		case status >= 400:
			log.Warn("http client error", fields...)
		case route == "/health":
			log.Debug("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// DBMiddleware кладет в контекст *gorm.DB, привязанный к контексту запроса.
// Таймаут БД отсчитывается для каждой операции отдельно (repositories.StatementTimeout),
// поэтому чтение тела и загрузка файлов его не расходуют.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RecoveryMiddleware превращает панику в 500 с обычным конвертом ошибки
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.CtxError(c.Request.Context(), "panic recovered",
			"panic", fmt.Sprint(recovered),
			"stack", string(debug.Stack()),
		)
		if c.Writer.Written() {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		apperrors.HandleError(c, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}
