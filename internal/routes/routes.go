package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "internship_backend/docs"
	"internship_backend/internal/auth"
	"internship_backend/internal/handlers"
	"internship_backend/internal/logger"
	"internship_backend/internal/middleware"
	"internship_backend/ws"
)

// Options - подключаемые части маршрутизации
type Options struct {
	// Limiter ограничивает запросы к /api; nil отключает ограничение
	Limiter middleware.Limiter
	Swagger bool
}

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	tokens *auth.TokenService,
	opts Options,
) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	if appHandlers.FileHandler != nil {
		appHandlers.FileHandler.RegisterRoutes(ginRouter)
	}

	authMW := middleware.AuthMiddleware(tokens)

	api := ginRouter.Group("/api")
	api.Use(middleware.RateLimitMiddleware(opts.Limiter))
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.AttendanceHandler.RegisterRoutes(api, authMW)
		appHandlers.AssignmentHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW)
		appHandlers.DashboardHandler.RegisterRoutes(api, authMW)
	}

	if wsHandler != nil {
		ginRouter.GET("/ws", middleware.QueryTokenMiddleware(tokens), wsHandler.ServeWS)
		logger.Info("WebSocket route /ws registered")
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
