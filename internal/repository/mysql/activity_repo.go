package mysql

import (
	"context"
	"encoding/json"
	"time"

	"MilCan_Platform/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

// appendActivity 活动流水和outbox一起写，供各仓储在事务内复用
func appendActivity(tx *gorm.DB, a *model.Activity) error {
	if err := tx.Create(a).Error; err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]any{
		"event_time":  time.Now().UTC().Format(time.RFC3339Nano),
		"type":        a.Type,
		"member_id":   a.MemberID,
		"member_name": a.MemberName,
		"related_id":  a.RelatedID,
	})
	ob := &model.ActivityOutbox{
		EventType: a.Type,
		MemberID:  a.MemberID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}
	return tx.Create(ob).Error
}

// Append 单独追加一条活动记录（带outbox）
func (r *ActivityRepository) Append(ctx context.Context, a *model.Activity) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendActivity(tx, a)
	})
}

// ListRecent 按时间倒序取最近的活动
func (r *ActivityRepository) ListRecent(ctx context.Context, offset, limit int) ([]model.Activity, error) {
	var list []model.Activity
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// OutboxRepository activity_outbox投递游标
type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ActivityOutbox, error) {
	var list []model.ActivityOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记录重试次数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
