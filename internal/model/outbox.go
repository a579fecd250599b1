package model

import "time"

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// ActivityOutbox 活动事件投递表，由relayer异步推给kafka
type ActivityOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	MemberID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ActivityOutbox) TableName() string { return "activity_outbox" }

// EmailOutbox 待发邮件表。邮件发送失败不影响业务写入，由relayer重试
type EmailOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	ToAddr    string `gorm:"size:64;not null"`
	Subject   string `gorm:"size:200;not null"`
	Body      string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmailOutbox) TableName() string { return "email_outbox" }
