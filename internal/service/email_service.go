package service

import (
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/redis"
)

// EmailService 重置密码验证码的发送与校验
type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.ResetCodeRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.ResetCodeRepository{}}
}

// SendResetCode 发送重置密码验证码
func (s *EmailService) SendResetCode(email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}

	// 先写入pending键
	if err = s.rds.PutPending(email, code); err != nil {
		return err
	}

	// 发送邮件
	html := pkg.ResetCodeHTML(code, redis.DefaultResetCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, "密码重置验证码", html); err != nil {
		return err
	}

	// 邮件发送后再将pending转为confirmed
	if err = s.rds.Confirm(email); err != nil {
		// 如果确认失败，清除pending键
		_ = s.rds.DeletePending(email)
		return err
	}

	return nil
}

// VerifyResetCode 校验验证码并一次性删除
func (s *EmailService) VerifyResetCode(email, code string) (bool, error) {
	val, err := s.rds.GetConfirmed(email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	ok := val == code
	if ok {
		if err = s.rds.DeleteConfirmed(email); err != nil {
			return false, err
		}
		return ok, nil
	}
	return false, nil
}
