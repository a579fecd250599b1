package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

// Create 邀请记录和待发邮件同事务落库，邮件发失败不影响邀请本身
func (r *InvitationRepository) Create(ctx context.Context, inv *model.Invitation, mail *model.EmailOutbox) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		return tx.Create(mail).Error
	})
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.DB.WithContext(ctx).Where("token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &inv, err
}

func (r *InvitationRepository) ListByInviter(ctx context.Context, inviterID uint64, offset, limit int) ([]model.Invitation, error) {
	var list []model.Invitation
	err := r.DB.WithContext(ctx).
		Where("invited_by = ?", inviterID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MarkExpired 校验时发现过期则立刻落库，之后的校验走状态字段。幂等
func (r *InvitationRepository) MarkExpired(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ? AND status = ?", id, model.InvitationPending).
		Update("status", model.InvitationExpired).Error
}

// Accept 令牌一次性使用：pending->accepted的CAS加建档在同一个事务。
// 第二次调用拿不到行，返回ErrAlreadyUsed。
func (r *InvitationRepository) Accept(ctx context.Context, invID uint64, m *model.Member) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.Invitation{}).
			Where("id = ? AND status = ?", invID, model.InvitationPending).
			Updates(map[string]any{"status": model.InvitationAccepted, "accepted_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrAlreadyUsed
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return appendActivity(tx, &model.Activity{
			Type:        model.ActivityMemberJoined,
			MemberID:    m.ID,
			MemberName:  m.Name,
			Description: fmt.Sprintf("%s joined as %s via invitation", m.Name, m.Role),
			Status:      m.Role,
			RelatedID:   invID,
		})
	})
}

// EmailOutboxRepository 待发邮件投递游标
type EmailOutboxRepository struct {
	DB *gorm.DB
}

func (r *EmailOutboxRepository) List(ctx context.Context, batchSize int) ([]model.EmailOutbox, error) {
	var list []model.EmailOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *EmailOutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EmailOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *EmailOutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EmailOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
