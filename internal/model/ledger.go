package model

import "time"

const (
	RefTypeAsset = "asset"
	RefTypeEvent = "event"
	RefTypeBonus = "bonus"
	RefTypeAdmin = "admin"
)

func ValidRefType(t string) bool {
	switch t {
	case RefTypeAsset, RefTypeEvent, RefTypeBonus, RefTypeAdmin:
		return true
	}
	return false
}

// LedgerEntry 积分流水，只追加不修改；冲正用负分新条目
type LedgerEntry struct {
	ID        uint64 `gorm:"primaryKey"`
	MemberID  uint64 `gorm:"not null;index"`
	Role      string `gorm:"size:16;not null"`
	Points    int64  `gorm:"not null"`
	Reason    string `gorm:"size:200;not null"`
	RefType   string `gorm:"size:16;not null"`
	RefID     uint64 `gorm:"index"`
	DedupKey  string `gorm:"uniqueIndex;size:64;not null"` // 幂等键
	CreatedAt time.Time
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
