package mysql

import (
	"context"
	"errors"
	"fmt"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

// Create 建档并写member_joined活动
func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return appendActivity(tx, &model.Activity{
			Type:        model.ActivityMemberJoined,
			MemberID:    m.ID,
			MemberName:  m.Name,
			Description: fmt.Sprintf("%s joined as %s", m.Name, m.Role),
			Status:      m.Role,
			RelatedID:   m.ID,
		})
	})
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint64) (*model.Member, error) {
	var m model.Member
	err := r.DB.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var m model.Member
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

// FindByLogin 登录时邮箱或handle均可
func (r *MemberRepository) FindByLogin(ctx context.Context, login string) (*model.Member, error) {
	var m model.Member
	err := r.DB.WithContext(ctx).Where("email = ? OR handle = ?", login, login).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &m, err
}

// UpdateProfile 只允许改资料字段，积分和角色不从这里走
func (r *MemberRepository) UpdateProfile(ctx context.Context, id uint64, fields map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) UpdatePassword(ctx context.Context, id uint64, hashed string) error {
	res := r.DB.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Update("password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// Deactivate 软停用，不做物理删除
func (r *MemberRepository) Deactivate(ctx context.Context, id uint64) error {
	res := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("id = ? AND is_active = true", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 区分不存在和已停用
		var n int64
		if err := r.DB.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return pkg.ErrNotFound
		}
		return pkg.ErrConflict
	}
	return nil
}

// FindByIDs 批量取成员，榜单按缓存命中顺序组装时用
func (r *MemberRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Member, error) {
	var list []model.Member
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]model.Member, len(list))
	for _, m := range list {
		out[m.ID] = m
	}
	return out, nil
}

// Leaderboard 按积分取前N个活跃成员
func (r *MemberRepository) Leaderboard(ctx context.Context, limit int) ([]model.Member, error) {
	var list []model.Member
	err := r.DB.WithContext(ctx).
		Where("is_active = true").
		Order("points DESC, id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
