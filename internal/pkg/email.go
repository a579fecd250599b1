package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// InviteHTML 邀请邮件正文，带接受链接
func InviteHTML(role, acceptURL string, ttl time.Duration) string {
	days := int(ttl.Hours() / 24)
	return fmt.Sprintf(`<p>您好，</p><p>您被邀请以 <b>%s</b> 身份加入 MIL-CAN 媒介素养社区。</p><p><a href="%s">点击接受邀请</a></p><p>链接 %d 天内有效，且只能使用一次。</p>`, role, acceptURL, days)
}

// ResetCodeHTML 重置密码验证码正文
func ResetCodeHTML(code string, ttl time.Duration) string {
	minM := int(ttl.Minutes())
	return fmt.Sprintf(`<p>您好，</p><p>您正在重置密码，验证码为：<b style="font-size:18px;">%s</b>。</p><p>有效期 %d 分钟，请勿泄露给他人。</p>`, code, minM)
}
