package model

import (
	"math"
	"time"
)

const (
	AssetTypeVideo    = "video"
	AssetTypeCarousel = "carousel"
	AssetTypeScript   = "script"

	TopicAdTransparency = "ad-transparency"
	TopicBeforeAfter    = "before-after"
	TopicDeepfake       = "deepfake"
	TopicVerify30s      = "verify-30s"

	AssetPending  = "pending"
	AssetApproved = "approved"
	AssetRejected = "rejected"
)

func ValidAssetType(t string) bool {
	switch t {
	case AssetTypeVideo, AssetTypeCarousel, AssetTypeScript:
		return true
	}
	return false
}

func ValidTopic(t string) bool {
	switch t {
	case TopicAdTransparency, TopicBeforeAfter, TopicDeepfake, TopicVerify30s:
		return true
	}
	return false
}

// AssetReview 评审子分数，accuracy 0-4 / context 0-2 / citations 0-4
type AssetReview struct {
	Accuracy   int    `json:"accuracy"`
	Context    int    `json:"context"`
	Citations  int    `json:"citations"`
	Overall    int    `json:"overall"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`
	ReviewerID uint64 `gorm:"index" json:"reviewer_id"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// ComputeOverall 三项合计除以固定的3后四舍五入。
// 各子项满分不同但除数固定为3，是产品侧定义的公式，不要在这里归一化。
func (r AssetReview) ComputeOverall() int {
	return int(math.Round(float64(r.Accuracy+r.Context+r.Citations) / 3.0))
}

// InRange 子分数范围校验
func (r AssetReview) InRange() bool {
	return r.Accuracy >= 0 && r.Accuracy <= 4 &&
		r.Context >= 0 && r.Context <= 2 &&
		r.Citations >= 0 && r.Citations <= 4
}

type Asset struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatorID    uint64 `gorm:"not null;index"`
	Type         string `gorm:"size:16;not null"`
	Topic        string `gorm:"size:32;not null;index"`
	Title        string `gorm:"size:200;not null"`
	Link         string `gorm:"size:512"`
	Caption      string `gorm:"type:text"`
	Citations    string `gorm:"type:json"` // 引用来源，JSON字符串数组
	HasCaptions  bool   `gorm:"not null;default:false"`
	Status       string `gorm:"size:16;not null;default:'pending';index"`
	Score        int    `gorm:"not null;default:0"`
	MonthlyViews int64  `gorm:"not null;default:0"`

	Review     AssetReview `gorm:"embedded;embeddedPrefix:review_"`
	ApprovedAt *time.Time
	ApprovedBy uint64

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// HasReview status不是pending时review才有意义
func (a *Asset) HasReview() bool {
	return a.Status == AssetApproved || a.Status == AssetRejected
}
