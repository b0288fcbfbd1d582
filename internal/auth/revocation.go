package auth

import (
	"context"
	"time"
)

// RefreshRevoker хранит отозванные refresh-токены.
// RevokeToken отзывает один токен по jti, RevokeUser - все токены пользователя,
// выпущенные не позже момента вызова.
type RefreshRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti, userID string, issuedAt time.Time) (bool, error)
}

// NoopRevoker используется без Redis: refresh-токены действуют до истечения срока.
type NoopRevoker struct{}

func (NoopRevoker) RevokeToken(context.Context, string, time.Duration) error { return nil }
func (NoopRevoker) RevokeUser(context.Context, string, time.Duration) error  { return nil }
func (NoopRevoker) IsRevoked(context.Context, string, string, time.Time) (bool, error) {
	return false, nil
}
