package model

import "time"

const (
	RoleCreator    = "creator"
	RoleAmbassador = "ambassador"
	RoleReviewer   = "reviewer"
	RoleAdmin      = "admin"
)

// ValidRole 校验角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleCreator, RoleAmbassador, RoleReviewer, RoleAdmin:
		return true
	}
	return false
}

type Member struct {
	ID        uint64 `gorm:"primaryKey"`
	Role      string `gorm:"size:16;not null;index"`
	Name      string `gorm:"size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:64;not null"`
	Handle    string `gorm:"uniqueIndex;size:32;not null"`
	Password  string `gorm:"size:255;not null"`
	Campus    string `gorm:"size:64"`
	Languages string `gorm:"type:json"` // JSON字符串数组
	Points    int64  `gorm:"not null;default:0;index"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
