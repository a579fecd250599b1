package model

import "time"

const (
	ActivityMemberJoined   = "member_joined"
	ActivityAssetSubmitted = "asset_submitted"
	ActivityAssetApproved  = "asset_approved"
	ActivityAssetRejected  = "asset_rejected"
	ActivityEventCreated   = "event_created"
)

// Activity 审计流水表，按时间倒序展示
type Activity struct {
	ID          uint64 `gorm:"primaryKey"`
	Type        string `gorm:"size:32;not null;index"`
	MemberID    uint64 `gorm:"not null;index"`
	MemberName  string `gorm:"size:64;not null"`
	Description string `gorm:"size:255"`
	Status      string `gorm:"size:16"`
	RelatedID   uint64
	CreatedAt   time.Time `gorm:"index"`
}

func (Activity) TableName() string { return "activities" }
