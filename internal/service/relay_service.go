package service

import (
	"context"
	"log"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
)

// ActivitySender 活动事件下游投递函数
type ActivitySender func(ctx context.Context, ob *model.ActivityOutbox) error

// ActivityRelayer 从activity_outbox拉取待发事件异步推给kafka
type ActivityRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    ActivitySender
}

func NewActivityRelayer(sender ActivitySender) *ActivityRelayer {
	return &ActivityRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *ActivityRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *ActivityRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("activity outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 生产投递：payload原样进topic，key取member id保序
func KafkaSender(producer *pkg.KafkaProducer) ActivitySender {
	return func(ctx context.Context, ob *model.ActivityOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.MemberID), []byte(ob.Payload))
	}
}

// LogSender 默认 sender（占位）：没配kafka时先打印
func LogSender(ctx context.Context, ob *model.ActivityOutbox) error {
	log.Printf("OUTBOX SEND type=%s member=%d payload=%s", ob.EventType, ob.MemberID, ob.Payload)
	return nil
}

// EmailRelayer 从email_outbox拉取待发邮件走SMTP，失败计数重试
type EmailRelayer struct {
	repo      *mysql.EmailOutboxRepository
	emailCfg  pkg.SMTPConfig
	batchSize int
	interval  time.Duration
}

func NewEmailRelayer(cfg pkg.SMTPConfig) *EmailRelayer {
	return &EmailRelayer{
		repo:      &mysql.EmailOutboxRepository{DB: mysql.DB},
		emailCfg:  cfg,
		batchSize: 50,
		interval:  5 * time.Second,
	}
}

func (r *EmailRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *EmailRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("email outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = pkg.SendEmail(r.emailCfg, ob.ToAddr, ob.Subject, ob.Body); err != nil {
			log.Printf("email send err to=%s: %v", ob.ToAddr, err)
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}
