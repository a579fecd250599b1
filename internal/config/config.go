package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 全部走环境变量，带开发默认值
type Config struct {
	Addr     string `env:"MILCAN_ADDR" envDefault:":8080"`
	MySQLDSN string `env:"MILCAN_MYSQL_DSN" envDefault:"user:password@tcp(127.0.0.1:3306)/milcan?charset=utf8mb4&parseTime=True"`

	RedisAddr     string `env:"MILCAN_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"MILCAN_REDIS_PASSWORD"`
	RedisDB       int    `env:"MILCAN_REDIS_DB" envDefault:"0"`

	SMTPHost     string `env:"MILCAN_SMTP_HOST" envDefault:"smtp.example.com"`
	SMTPPort     int    `env:"MILCAN_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"MILCAN_SMTP_USERNAME" envDefault:"no-reply@example.com"`
	SMTPPassword string `env:"MILCAN_SMTP_PASSWORD"`
	SMTPFrom     string `env:"MILCAN_SMTP_FROM" envDefault:"MIL-CAN <no-reply@example.com>"`

	KafkaBrokers []string `env:"MILCAN_KAFKA_BROKERS" envSeparator:"," envDefault:"127.0.0.1:9092"`
	KafkaTopic   string   `env:"MILCAN_KAFKA_TOPIC" envDefault:"milcan.activity"`

	AccessSecret  string `env:"MILCAN_JWT_ACCESS_SECRET"`
	RefreshSecret string `env:"MILCAN_JWT_REFRESH_SECRET"`

	BaseURL   string        `env:"MILCAN_BASE_URL" envDefault:"http://localhost:8080"`
	InviteTTL time.Duration `env:"MILCAN_INVITE_TTL" envDefault:"720h"` // 30天
}

func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
