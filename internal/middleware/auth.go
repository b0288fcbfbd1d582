package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"internship_backend/internal/auth"
	"internship_backend/internal/logger"
	"internship_backend/internal/models"
	"internship_backend/pkg/apperrors"
	"internship_backend/pkg/contextkeys"
)

const bearerPrefix = "Bearer "

// AuthMiddleware - проверка access-токена из заголовка Authorization
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortWithError(c, apperrors.ErrAccessTokenRequired)
			return
		}

		authenticate(c, tokens, strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
	}
}

// QueryTokenMiddleware читает access-токен из параметра ?token= (WebSocket handshake,
// браузер не может передать заголовок Authorization).
func QueryTokenMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, tokens, c.Query("token"))
	}
}

func authenticate(c *gin.Context, tokens *auth.TokenService, token string) {
	if token == "" {
		abortWithError(c, apperrors.ErrAccessTokenRequired)
		return
	}

	claims, err := tokens.VerifyAccessToken(token)
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "access token rejected", "path", c.FullPath())
		abortWithError(c, apperrors.ErrInvalidToken)
		return
	}

	c.Set(string(contextkeys.PrincipalKey), auth.Principal{UserID: claims.UserID, Role: claims.Role})
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
	c.Next()
}

// RequireRoles пропускает только пользователей с одной из ролей.
// Подключается после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok || !principal.HasRole(roles...) {
			abortWithError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// PrincipalFrom возвращает аутентифицированного пользователя запроса
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(string(contextkeys.PrincipalKey))
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := v.(auth.Principal)
	return principal, ok
}

func abortWithError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}
