package apperrors

import (
	"context"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/logger"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

var debugMode atomic.Bool

// Configure задает режим отладки для HandleError. Вызывается один раз при старте.
func Configure(debug bool) {
	debugMode.Store(debug)
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr := Resolve(err)

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err,
			"code", appErr.Code,
			"path", c.FullPath(),
		)
		// Причину показываем только в режиме отладки
		if h.Debug && appErr.Err != nil {
			appErr = appErr.WithDetails(gin.H{"cause": appErr.Err.Error()})
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// Resolve приводит любую ошибку к AppError.
// Истекший таймаут БД становится 503, все неизвестное - 500.
func Resolve(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	if Is(err, context.DeadlineExceeded) {
		return ErrDatabaseTimeout.WithError(err)
	}
	return InternalError(err)
}

// HandleError - функция-помощник для Gin, режим берется из Configure
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode.Load()}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleValidationError - обработчик для ошибок биндинга Gin
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ValidationError(gin.H{"body": err.Error()}))
}
