package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevoker - список отозванных refresh-токенов.
// Ключи:
//
//	<prefix>auth:rt:jti:<jti>      - отозван конкретный токен
//	<prefix>auth:rt:user_ms:<userID> - unix-время в мс, до которого (включительно) отозваны все токены пользователя
//
// TTL ключей равен сроку жизни refresh-токена, после этого запись не нужна.
type RedisRevoker struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisRevoker(rdb *redis.Client, prefix string) *RedisRevoker {
	return &RedisRevoker{rdb: rdb, prefix: prefix, now: time.Now}
}

func (r *RedisRevoker) jtiKey(jti string) string     { return r.prefix + "auth:rt:jti:" + jti }
func (r *RedisRevoker) userKey(userID string) string { return r.prefix + "auth:rt:user_ms:" + userID }

func (r *RedisRevoker) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.jtiKey(jti), "1", ttl).Err()
}

func (r *RedisRevoker) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	cutoff := strconv.FormatInt(r.now().UnixMilli(), 10)
	return r.rdb.Set(ctx, r.userKey(userID), cutoff, ttl).Err()
}

// IsRevoked проверяет оба ключа одним MGET. Сравнение идет в миллисекундах, поэтому
// токен, выпущенный сразу после сброса пароля или повторной активации, действует.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti, userID string, issuedAt time.Time) (bool, error) {
	vals, err := r.rdb.MGet(ctx, r.jtiKey(jti), r.userKey(userID)).Result()
	if err != nil {
		return false, err
	}

	if vals[0] != nil {
		return true, nil
	}

	raw, ok := vals[1].(string)
	if !ok {
		return false, nil
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, errors.New("cache: malformed user revocation value")
	}

	return issuedAt.UnixMilli() <= cutoff, nil
}
