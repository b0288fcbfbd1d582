package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_backend/internal/auth"
	"internship_backend/internal/middleware"
	"internship_backend/internal/models"
)

type wsFixture struct {
	hub    *Hub
	tokens *auth.TokenService
	server *httptest.Server
	cancel context.CancelFunc
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		ResetTTL:      time.Hour,
		Issuer:        "test",
	})
	require.NoError(t, err)

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws", middleware.QueryTokenMiddleware(tokens), NewWebSocketHandler(hub, "http://localhost:3000").ServeWS)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return &wsFixture{hub: hub, tokens: tokens, server: server, cancel: cancel}
}

func (f *wsFixture) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, err := f.tokens.IssueAccessToken(userID, models.UserRoleStudent)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForUsers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == n }, time.Second, 10*time.Millisecond)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_PublishReachesEveryConnectionOfUser(t *testing.T) {
	f := newWSFixture(t)
	userID := uuid.NewString()
	otherID := uuid.NewString()

	first := f.dial(t, userID)
	second := f.dial(t, userID)
	other := f.dial(t, otherID)
	waitForUsers(t, f.hub, 2)
	require.Eventually(t, func() bool { return f.hub.connectionCount(userID) == 2 }, time.Second, 10*time.Millisecond)

	f.hub.PublishToUser(userID, "notification", map[string]any{"title": "New Attendance Log"})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readEnvelope(t, conn)
		assert.Equal(t, "notification", msg["event"])
		assert.Equal(t, map[string]any{"title": "New Attendance Log"}, msg["data"])
	}

	require.NoError(t, other.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other user must not receive the event")
}

func TestHub_PingAction(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, uuid.NewString())
	waitForUsers(t, f.hub, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "ping"}))
	assert.Equal(t, "pong", readEnvelope(t, conn)["event"])
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, uuid.NewString())
	waitForUsers(t, f.hub, 1)

	require.NoError(t, conn.Close())
	waitForUsers(t, f.hub, 0)
}

func TestHub_ShutdownClosesConnections(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t, uuid.NewString())
	waitForUsers(t, f.hub, 1)

	f.cancel()
	<-f.hub.Done()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	// публикация после остановки не паникует
	f.hub.PublishToUser("anyone", "notification", nil)
}

func TestServeWS_Rejections(t *testing.T) {
	f := newWSFixture(t)
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := f.tokens.IssueAccessToken(uuid.NewString(), models.UserRoleStudent)
	require.NoError(t, err)
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err = websocket.DefaultDialer.Dial(url+"?token="+token, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
