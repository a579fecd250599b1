package service

import (
	"context"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/repository/mysql"
)

type statsStore interface {
	CountActiveCreators(ctx context.Context) (int64, error)
	CountAssetsByStatus(ctx context.Context, status string) (int64, error)
	SumMonthlyViews(ctx context.Context) (int64, error)
	CountMembers(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
}

// Stats 仪表盘汇总，调用时点的快照
type Stats struct {
	ActiveCreators  int64     `json:"active_creators"`
	PendingReview   int64     `json:"pending_review"`
	ApprovedContent int64     `json:"approved_content"`
	MonthlyViews    int64     `json:"monthly_views"`
	TotalMembers    int64     `json:"total_members"`
	TotalEvents     int64     `json:"total_events"`
	LastUpdated     time.Time `json:"last_updated"`
}

type DashboardService struct {
	stats statsStore
	now   func() time.Time
}

func NewDashboardService() *DashboardService {
	return &DashboardService{
		stats: &mysql.StatsRepository{DB: mysql.DB},
		now:   time.Now,
	}
}

// ComputeStats 每次全量重算，没有缓存
func (s *DashboardService) ComputeStats(ctx context.Context) (*Stats, error) {
	out := &Stats{LastUpdated: s.now()}

	var err error
	if out.ActiveCreators, err = s.stats.CountActiveCreators(ctx); err != nil {
		return nil, err
	}
	if out.PendingReview, err = s.stats.CountAssetsByStatus(ctx, model.AssetPending); err != nil {
		return nil, err
	}
	if out.ApprovedContent, err = s.stats.CountAssetsByStatus(ctx, model.AssetApproved); err != nil {
		return nil, err
	}
	if out.MonthlyViews, err = s.stats.SumMonthlyViews(ctx); err != nil {
		return nil, err
	}
	if out.TotalMembers, err = s.stats.CountMembers(ctx); err != nil {
		return nil, err
	}
	if out.TotalEvents, err = s.stats.CountEvents(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
