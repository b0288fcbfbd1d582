package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"internship_backend/internal/auth"
	"internship_backend/internal/middleware"
	"internship_backend/internal/models"
	"internship_backend/internal/repositories"
	"internship_backend/internal/validator"
)

// memUsers - UserRepository в памяти для сквозных проверок через роутер
type memUsers struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]models.User)}
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if match(u) {
			copied := u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *memUsers) FindByEmailOrIDNumber(_ *gorm.DB, email, idNumber string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email || u.IDNumber == idNumber })
}

func (m *memUsers) Create(_ *gorm.DB, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email || u.IDNumber == user.IDNumber {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	m.byID[user.ID] = *user
	return nil
}

func (m *memUsers) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) update(id string, fn func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(&u)
	m.byID[id] = u
	return nil
}

func (m *memUsers) UpdateLastLogin(_ *gorm.DB, id string, at time.Time) error {
	return m.update(id, func(u *models.User) { u.LastLogin = &at })
}

func (m *memUsers) UpdatePasswordHash(_ *gorm.DB, id, hash string) error {
	return m.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (m *memUsers) SetActive(_ *gorm.DB, id string, active bool) error {
	return m.update(id, func(u *models.User) { u.IsActive = active })
}

func (m *memUsers) CountActiveByRole(_ *gorm.DB) (map[models.UserRole]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.UserRole]int64)
	for _, u := range m.byID {
		if u.IsActive {
			counts[u.Role]++
		}
	}
	return counts, nil
}

func testTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
		ResetTTL:      time.Hour,
		Issuer:        "test",
	})
	require.NoError(t, err)
	return tokens
}

// newTestRouter собирает gin с теми же middleware, что и приложение, кроме логирования
func newTestRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.DBMiddleware(&gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}))
	return router, router.Group("/api")
}

func newTestBase() *BaseHandler {
	return NewBaseHandler(validator.New())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	envelope, ok := decodeBody(t, w)["error"].(map[string]any)
	require.True(t, ok, "no error envelope in %s", w.Body.String())
	code, _ := envelope["code"].(string)
	return code
}

func bearer(t *testing.T, tokens *auth.TokenService, role models.UserRole) (string, string) {
	t.Helper()
	userID := uuid.NewString()
	token, err := tokens.IssueAccessToken(userID, role)
	require.NoError(t, err)
	return userID, token
}
