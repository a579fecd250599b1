package service

import (
	"context"
	"encoding/json"
	"fmt"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
)

// assetStore 资产仓储，测试用内存实现替换
type assetStore interface {
	Create(ctx context.Context, a *model.Asset, creatorName string) error
	FindByID(ctx context.Context, id uint64) (*model.Asset, error)
	List(ctx context.Context, status string, creatorID uint64, offset, limit int) ([]model.Asset, error)
	UpdateMonthlyViews(ctx context.Context, id uint64, views int64) error
	ApplyReview(ctx context.Context, assetID uint64, out mysql.ReviewOutcome) (*model.Asset, error)
}

// memberReader service层只需要读成员
type memberReader interface {
	FindByID(ctx context.Context, id uint64) (*model.Member, error)
}

type AssetService struct {
	assets  assetStore
	members memberReader
}

func NewAssetService() *AssetService {
	return &AssetService{
		assets:  &mysql.AssetRepository{DB: mysql.DB},
		members: &mysql.MemberRepository{DB: mysql.DB},
	}
}

// SubmitInput 创作者投稿
type SubmitInput struct {
	CreatorID   uint64
	Type        string
	Topic       string
	Title       string
	Link        string
	Caption     string
	Citations   []string
	HasCaptions bool
}

func (s *AssetService) Submit(ctx context.Context, in SubmitInput) (*model.Asset, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
	}
	if !model.ValidAssetType(in.Type) {
		return nil, fmt.Errorf("%w: unknown asset type %q", pkg.ErrValidation, in.Type)
	}
	if !model.ValidTopic(in.Topic) {
		return nil, fmt.Errorf("%w: unknown topic %q", pkg.ErrValidation, in.Topic)
	}

	creator, err := s.members.FindByID(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if !creator.IsActive {
		return nil, fmt.Errorf("%w: member deactivated", pkg.ErrConflict)
	}
	if creator.Role != model.RoleCreator && creator.Role != model.RoleAmbassador {
		return nil, fmt.Errorf("%w: only creators submit content", pkg.ErrValidation)
	}

	citations, _ := json.Marshal(in.Citations)
	a := &model.Asset{
		CreatorID:   in.CreatorID,
		Type:        in.Type,
		Topic:       in.Topic,
		Title:       in.Title,
		Link:        in.Link,
		Caption:     in.Caption,
		Citations:   string(citations),
		HasCaptions: in.HasCaptions,
		Status:      model.AssetPending,
		Score:       0,
	}
	if err := s.assets.Create(ctx, a, creator.Name); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) Get(ctx context.Context, id uint64) (*model.Asset, error) {
	return s.assets.FindByID(ctx, id)
}

func (s *AssetService) List(ctx context.Context, status string, creatorID uint64, page, size int) ([]model.Asset, error) {
	if status != "" && status != model.AssetPending && status != model.AssetApproved && status != model.AssetRejected {
		return nil, fmt.Errorf("%w: unknown status %q", pkg.ErrValidation, status)
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.assets.List(ctx, status, creatorID, offset, size)
}

// UpdateMonthlyViews 管理员回填月播放量，供仪表盘汇总
func (s *AssetService) UpdateMonthlyViews(ctx context.Context, id uint64, views int64) error {
	if views < 0 {
		return fmt.Errorf("%w: views must be >= 0", pkg.ErrValidation)
	}
	return s.assets.UpdateMonthlyViews(ctx, id, views)
}
