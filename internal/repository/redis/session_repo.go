package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	SessionTokenPrefix = "login:member:token"
	SessionTokenExpire = 60 * 30
)

// SessionRepository access token镜像，保证单点登录
type SessionRepository struct{}

func (r *SessionRepository) AddToken(memberID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", SessionTokenPrefix, memberID)
	if err := Client.Set(context.Background(), key, token, time.Second*SessionTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetToken(memberID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", SessionTokenPrefix, memberID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) ExtendToken(memberID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionTokenPrefix, memberID)
	_, err := Client.Expire(context.Background(), key, time.Second*SessionTokenExpire).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteToken(memberID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionTokenPrefix, memberID)
	err := Client.Del(context.Background(), key).Err()
	if err != nil {
		return ErrTokenDeleted
	}
	return nil
}
