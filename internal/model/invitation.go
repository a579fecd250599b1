package model

import "time"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Invitation 邀请令牌，一次性、有有效期
type Invitation struct {
	ID         uint64 `gorm:"primaryKey"`
	Email      string `gorm:"size:64;not null;index"`
	Role       string `gorm:"size:16;not null"`
	InvitedBy  uint64 `gorm:"not null;index"`
	Status     string `gorm:"size:16;not null;default:'pending';index"`
	Token      string `gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	AcceptedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
