package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"internship_backend/internal/logger"
	"internship_backend/internal/middleware"
	"internship_backend/pkg/apperrors"
)

type WebSocketHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler принимает соединения только с адреса фронтенда.
// Запросы без Origin (не из браузера) пропускаются.
func NewWebSocketHandler(hub *Hub, allowedOrigin string) *WebSocketHandler {
	allowedOrigin = strings.TrimRight(allowedOrigin, "/")
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "" || origin == allowedOrigin
			},
		},
	}
}

// ServeWS подключает аутентифицированного пользователя (QueryTokenMiddleware)
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		apperrors.HandleError(c, apperrors.ErrAccessTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "websocket upgrade failed", "error", err.Error())
		return
	}

	client := newClient(h.hub, principal.UserID, conn)
	if !h.hub.join(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	logger.CtxInfo(c.Request.Context(), "websocket client connected")

	go client.writePump()
	go client.readPump()
}
