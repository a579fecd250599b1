package mysql

import (
	"context"

	"MilCan_Platform/internal/model"

	"gorm.io/gorm"
)

// StatsRepository 仪表盘统计查询，每次全量扫描，数据量级下不需要缓存
type StatsRepository struct {
	DB *gorm.DB
}

func (r *StatsRepository) CountActiveCreators(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("role = ? AND is_active = true", model.RoleCreator).
		Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountAssetsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Asset{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *StatsRepository) SumMonthlyViews(ctx context.Context) (int64, error) {
	var sum int64
	err := r.DB.WithContext(ctx).Model(&model.Asset{}).
		Select("COALESCE(SUM(monthly_views), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *StatsRepository) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Event{}).Count(&n).Error
	return n, err
}
