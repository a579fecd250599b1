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

type EventRepository struct {
	DB *gorm.DB
}

// Create 建活动并写event_created记录
func (r *EventRepository) Create(ctx context.Context, e *model.Event, creatorName string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return appendActivity(tx, &model.Activity{
			Type:        model.ActivityEventCreated,
			MemberID:    e.CreatedBy,
			MemberName:  creatorName,
			Description: fmt.Sprintf("%s created event %q", creatorName, e.Title),
			RelatedID:   e.ID,
		})
	})
}

func (r *EventRepository) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	var e model.Event
	err := r.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &e, err
}

// ListUpcoming 从现在起往后的活动，按开始时间排序
func (r *EventRepository) ListUpcoming(ctx context.Context, offset, limit int) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.WithContext(ctx).
		Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}
