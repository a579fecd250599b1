package main

import (
	"context"
	"log"

	"MilCan_Platform/internal/config"
	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
	"MilCan_Platform/internal/repository/redis"
	"MilCan_Platform/internal/router"
	"MilCan_Platform/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	pkg.ConfigureJWT(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.Member{},
		&model.Asset{},
		&model.LedgerEntry{},
		&model.Activity{},
		&model.ActivityOutbox{},
		&model.EmailOutbox{},
		&model.Invitation{},
		&model.Event{},
	)

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 活动事件outbox投递，kafka不可用时降级为日志
	sender := service.LogSender
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
	if err != nil {
		log.Printf("kafka producer init err: %v, fallback to log sender", err)
	} else {
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}
	go service.NewActivityRelayer(sender).Run(ctx)

	// 邀请/验证码邮件异步投递
	go service.NewEmailRelayer(smtpCfg).Run(ctx)

	// 积分对账兜底
	go service.NewPointsReconciler().Run(ctx)

	// Gin
	emailSvc := service.NewEmailService(smtpCfg)
	inviteSvc := service.NewInvitationService(cfg.BaseURL, cfg.InviteTTL)
	r := router.InitRouter(emailSvc, inviteSvc)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
