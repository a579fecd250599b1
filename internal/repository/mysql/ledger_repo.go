package mysql

import (
	"context"
	"errors"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	DB *gorm.DB
}

var errDuplicateAward = errors.New("duplicate award")

// Award 一个事务内追加流水并调整成员积分。
// dedup_key冲突视为重复请求，返回applied=false且不改任何数据。
func (r *LedgerRepository) Award(ctx context.Context, entry *model.LedgerEntry) (bool, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return awardInTx(tx, entry)
	})
	if errors.Is(err, errDuplicateAward) {
		return false, nil
	}
	return err == nil, err
}

// awardInTx 供审核等更大的事务复用
func awardInTx(tx *gorm.DB, entry *model.LedgerEntry) error {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoNothing: true,
	}).Create(entry)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errDuplicateAward
	}
	// 成员积分落地，负分调整时钳到0
	upd := tx.Model(&model.Member{}).
		Where("id = ?", entry.MemberID).
		UpdateColumn("points", gorm.Expr("GREATEST(0, points + ?)", entry.Points))
	if upd.Error != nil {
		return upd.Error
	}
	if upd.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// ListByMember 成员积分流水，倒序
func (r *LedgerRepository) ListByMember(ctx context.Context, memberID uint64, offset, limit int) ([]model.LedgerEntry, error) {
	var list []model.LedgerEntry
	err := r.DB.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// SumByMember 流水合计，是积分的权威值
func (r *LedgerRepository) SumByMember(ctx context.Context, memberID uint64) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	return sum, err
}

// PointsReconcilerRepo 积分对账查询
type PointsReconcilerRepo struct {
	DB *gorm.DB
}

// Pair 对账消息结构体
type Pair struct {
	ID     uint64
	Points int64
}

// ReconcileList 按id游标批量取成员当前积分
func (r *PointsReconcilerRepo) ReconcileList(ctx context.Context, batchSize int, lastID uint64) ([]Pair, uint64, error) {
	var list []Pair
	if err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Select("id", "points").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealPoints 流水真实合计
func (r *PointsReconcilerRepo) RealPoints(ctx context.Context, memberID uint64) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("member_id = ?", memberID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	return sum, err
}

// ReconcilePoints 修正成员积分为流水合计
func (r *PointsReconcilerRepo) ReconcilePoints(ctx context.Context, memberID uint64, real int64) error {
	if real < 0 {
		real = 0
	}
	return r.DB.WithContext(ctx).Model(&model.Member{}).Where("id = ?", memberID).
		UpdateColumn("points", real).Error
}
