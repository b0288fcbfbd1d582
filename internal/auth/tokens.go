package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"internship_backend/internal/models"
)

// ErrInvalidToken возвращается при любой ошибке проверки: подпись, алгоритм,
// срок действия, формат, неизвестная роль.
var ErrInvalidToken = errors.New("invalid token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenTypeReset   = "reset"
)

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
	Issuer        string
}

type AccessClaims struct {
	UserID    string          `json:"userId"`
	Role      models.UserRole `json:"role"`
	TokenType string          `json:"typ"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"typ"`

	// IssuedAtMs - время выпуска в миллисекундах; iat хранит только секунды.
	IssuedAtMs int64 `json:"iat_ms,omitempty"`

	jwt.RegisteredClaims
}

// IssuedAtPrecise возвращает время выпуска с точностью до миллисекунды,
// для токенов без iat_ms - с точностью iat.
func (c *RefreshClaims) IssuedAtPrecise() time.Time {
	if c.IssuedAtMs > 0 {
		return time.UnixMilli(c.IssuedAtMs)
	}
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

type ResetClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет HS256 токены. Ключи не меняются после создания,
// поэтому сервис безопасен для конкурентного использования.
type TokenService struct {
	cfg           TokenConfig
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("auth: access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("auth: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.ResetTTL <= 0 {
		return nil, errors.New("auth: token lifetimes must be positive")
	}

	return &TokenService{
		cfg:           cfg,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		now:           time.Now,
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.cfg.AccessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }
func (s *TokenService) ResetTTL() time.Duration   { return s.cfg.ResetTTL }

func (s *TokenService) registered(userID string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *TokenService) IssueAccessToken(userID string, role models.UserRole) (string, error) {
	claims := AccessClaims{
		UserID:           userID,
		Role:             role,
		TokenType:        tokenTypeAccess,
		RegisteredClaims: s.registered(userID, s.now(), s.cfg.AccessTTL),
	}
	return sign(claims, s.accessSecret)
}

// IssueRefreshToken добавляет случайный jti, по которому токен можно отозвать.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	now := s.now()
	claims := RefreshClaims{
		UserID:           userID,
		TokenType:        tokenTypeRefresh,
		IssuedAtMs:       now.UnixMilli(),
		RegisteredClaims: s.registered(userID, now, s.cfg.RefreshTTL),
	}
	claims.ID = uuid.NewString()
	return sign(claims, s.refreshSecret)
}

// IssueResetToken подписывает токен ключом access-секрет + текущий хеш пароля.
// После смены пароля все выданные ранее reset-токены перестают проходить проверку.
func (s *TokenService) IssueResetToken(userID, currentHash string) (string, error) {
	claims := ResetClaims{
		UserID:           userID,
		TokenType:        tokenTypeReset,
		RegisteredClaims: s.registered(userID, s.now(), s.cfg.ResetTTL),
	}
	return sign(claims, s.resetKey(currentHash))
}

func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, claims, s.accessSecret); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess || !validUserID(claims.UserID) {
		return nil, ErrInvalidToken
	}
	if _, err := models.ParseUserRole(string(claims.Role)); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(token, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh || !validUserID(claims.UserID) || claims.ID == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyResetToken(token, currentHash string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := s.parse(token, claims, s.resetKey(currentHash)); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeReset || !validUserID(claims.UserID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResetTokenSubject читает userId без проверки подписи, чтобы вызывающий мог
// загрузить текущий хеш и затем вызвать VerifyResetToken. Результату нельзя
// доверять до этой проверки.
func (s *TokenService) ResetTokenSubject(token string) (string, error) {
	claims := &ResetClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.TokenType != tokenTypeReset || !validUserID(claims.UserID) {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *TokenService) resetKey(currentHash string) []byte {
	return []byte(s.cfg.AccessSecret + currentHash)
}

func (s *TokenService) parse(token string, claims jwt.Claims, key []byte) error {
	if token == "" {
		return ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

func sign(claims jwt.Claims, key []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func validUserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
