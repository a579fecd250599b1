package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository struct {
	DB *gorm.DB
}

// Create 投稿落库并写asset_submitted活动
func (r *AssetRepository) Create(ctx context.Context, a *model.Asset, creatorName string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return appendActivity(tx, &model.Activity{
			Type:        model.ActivityAssetSubmitted,
			MemberID:    a.CreatorID,
			MemberName:  creatorName,
			Description: fmt.Sprintf("%s submitted %s %q", creatorName, a.Type, a.Title),
			Status:      model.AssetPending,
			RelatedID:   a.ID,
		})
	})
}

func (r *AssetRepository) FindByID(ctx context.Context, id uint64) (*model.Asset, error) {
	var a model.Asset
	err := r.DB.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.ErrNotFound
	}
	return &a, err
}

// List status/creator可选过滤，倒序分页
func (r *AssetRepository) List(ctx context.Context, status string, creatorID uint64, offset, limit int) ([]model.Asset, error) {
	q := r.DB.WithContext(ctx).Model(&model.Asset{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if creatorID > 0 {
		q = q.Where("creator_id = ?", creatorID)
	}
	var list []model.Asset
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// UpdateMonthlyViews 管理侧回填播放量
func (r *AssetRepository) UpdateMonthlyViews(ctx context.Context, id uint64, views int64) error {
	res := r.DB.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).
		UpdateColumn("monthly_views", views)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

// ReviewOutcome ApplyReview的入参，service算好分数后传入
type ReviewOutcome struct {
	Review      model.AssetReview
	Approve     bool
	AwardPoints int64 // approve时记入流水的积分
}

// ApplyReview 审核落库：pending->approved/rejected 的CAS状态迁移、
// 评审字段、积分流水、成员积分和活动记录在同一个事务里完成。
// 两个并发审核只有先提交的生效，后者拿到ErrConflict。
func (r *AssetRepository) ApplyReview(ctx context.Context, assetID uint64, out ReviewOutcome) (*model.Asset, error) {
	var reviewed model.Asset
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Asset
		// select for update 避免竞争
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.ErrNotFound
			}
			return err
		}
		if a.Status != model.AssetPending {
			return pkg.ErrConflict
		}

		status := model.AssetRejected
		if out.Approve {
			status = model.AssetApproved
		}
		now := time.Now()
		fields := map[string]any{
			"status":             status,
			"score":              out.Review.Overall,
			"review_accuracy":    out.Review.Accuracy,
			"review_context":     out.Review.Context,
			"review_citations":   out.Review.Citations,
			"review_overall":     out.Review.Overall,
			"review_notes":       out.Review.Notes,
			"review_reviewer_id": out.Review.ReviewerID,
			"review_reviewed_at": now,
		}
		if out.Approve {
			fields["approved_at"] = now
			fields["approved_by"] = out.Review.ReviewerID
		}
		// 行锁之外再带status条件兜底，RowsAffected==0说明被并发抢先
		res := tx.Model(&model.Asset{}).
			Where("id = ? AND status = ?", assetID, model.AssetPending).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrConflict
		}

		var creator model.Member
		if err := tx.First(&creator, a.CreatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.ErrNotFound
			}
			return err
		}

		activityType := model.ActivityAssetRejected
		if out.Approve {
			activityType = model.ActivityAssetApproved
			entry := &model.LedgerEntry{
				MemberID: creator.ID,
				Role:     creator.Role,
				Points:   out.AwardPoints,
				Reason:   fmt.Sprintf("asset %q approved", a.Title),
				RefType:  model.RefTypeAsset,
				RefID:    a.ID,
				DedupKey: fmt.Sprintf("asset:%d", a.ID),
			}
			if err := awardInTx(tx, entry); err != nil && !errors.Is(err, errDuplicateAward) {
				return err
			}
		}

		if err := appendActivity(tx, &model.Activity{
			Type:        activityType,
			MemberID:    creator.ID,
			MemberName:  creator.Name,
			Description: fmt.Sprintf("%s %q %s", a.Type, a.Title, status),
			Status:      status,
			RelatedID:   a.ID,
		}); err != nil {
			return err
		}

		return tx.First(&reviewed, assetID).Error
	})
	if err != nil {
		return nil, err
	}
	return &reviewed, nil
}
