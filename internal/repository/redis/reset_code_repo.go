package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultResetCodeTTL = 5 * time.Minute
	ResetCodePrefix     = "email:code:reset"

	// 两阶段键：pending在邮件发出前写入，发出后提升为confirmed
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
)

var (
	ErrCodeNotFound        = errors.New("reset code not found")
	ErrCodeDelFailed       = errors.New("reset code delete failed")
	ErrCodePendingFailed   = errors.New("reset code pending failed")
	ErrCodeConfirmedFailed = errors.New("reset code confirmed failed")
)

// ResetCodeRepository 重置密码验证码的两阶段存储
type ResetCodeRepository struct{}

func (e *ResetCodeRepository) PutPending(email, code string) error {
	key := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, PendingSuffix, email)
	if err := Client.Set(context.Background(), key, code, DefaultResetCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// Confirm 将 pending 转为 confirmed（保留/重置 TTL）
func (e *ResetCodeRepository) Confirm(email string) error {
	srcKey := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, PendingSuffix, email)
	dstKey := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, ConfirmedSuffix, email)

	// 使用lua脚本原子执行：取值+写入目标+设置 TTL+删除源
	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultResetCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script, []string{srcKey, dstKey}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending 删除 pending 键（幂等）
func (e *ResetCodeRepository) DeletePending(email string) error {
	key := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, PendingSuffix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}

// GetConfirmed 校验时读confirmed键
func (e *ResetCodeRepository) GetConfirmed(email string) (string, error) {
	key := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, ConfirmedSuffix, email)
	val, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteConfirmed 验证通过后一次性删除
func (e *ResetCodeRepository) DeleteConfirmed(email string) error {
	key := fmt.Sprintf("%s:%s:%s", ResetCodePrefix, ConfirmedSuffix, email)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
