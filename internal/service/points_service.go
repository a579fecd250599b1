package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
	"MilCan_Platform/internal/repository/redis"

	"github.com/google/uuid"
)

type ledgerStore interface {
	Award(ctx context.Context, entry *model.LedgerEntry) (bool, error)
	ListByMember(ctx context.Context, memberID uint64, offset, limit int) ([]model.LedgerEntry, error)
	SumByMember(ctx context.Context, memberID uint64) (int64, error)
}

type PointsService struct {
	ledger  ledgerStore
	members memberReader
	boards  leaderboardCache
}

func NewPointsService() *PointsService {
	return &PointsService{
		ledger:  &mysql.LedgerRepository{DB: mysql.DB},
		members: &mysql.MemberRepository{DB: mysql.DB},
		boards:  redis.NewLeaderboardRepository(),
	}
}

// AwardInput dedup key不传则由服务端生成，重试方需要自带
type AwardInput struct {
	MemberID uint64
	Points   int64
	Reason   string
	RefType  string
	RefID    uint64
	DedupKey string
}

// Award 追加流水并同步成员积分。返回applied=false表示幂等命中，没有重复记账
func (s *PointsService) Award(ctx context.Context, in AwardInput) (bool, error) {
	if in.MemberID == 0 {
		return false, fmt.Errorf("%w: member id required", pkg.ErrValidation)
	}
	if in.Points == 0 {
		return false, fmt.Errorf("%w: points must be non-zero", pkg.ErrValidation)
	}
	if in.Reason == "" {
		return false, fmt.Errorf("%w: reason required", pkg.ErrValidation)
	}
	if !model.ValidRefType(in.RefType) {
		return false, fmt.Errorf("%w: unknown ref type %q", pkg.ErrValidation, in.RefType)
	}

	m, err := s.members.FindByID(ctx, in.MemberID)
	if err != nil {
		return false, err
	}

	dedup := in.DedupKey
	if dedup == "" {
		dedup = uuid.NewString()
	}
	applied, err := s.ledger.Award(ctx, &model.LedgerEntry{
		MemberID: in.MemberID,
		Role:     m.Role,
		Points:   in.Points,
		Reason:   in.Reason,
		RefType:  in.RefType,
		RefID:    in.RefID,
		DedupKey: dedup,
	})
	if err != nil {
		return false, err
	}

	if applied && s.boards != nil {
		if err := s.boards.IncrScore(ctx, in.MemberID, in.Points); err != nil {
			log.Printf("leaderboard incr err: %v", err)
		}
	}
	return applied, nil
}

func (s *PointsService) History(ctx context.Context, memberID uint64, page, size int) ([]model.LedgerEntry, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.ledger.ListByMember(ctx, memberID, (page-1)*size, size)
}

// Balance 流水合计，权威积分值
func (s *PointsService) Balance(ctx context.Context, memberID uint64) (int64, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return 0, err
	}
	return s.ledger.SumByMember(ctx, memberID)
}

// PointsReconciler 定时对账：members.points必须等于流水合计
type PointsReconciler struct {
	repo      *mysql.PointsReconcilerRepo
	batchSize int
	interval  time.Duration
}

func NewPointsReconciler() *PointsReconciler {
	return &PointsReconciler{
		repo:      &mysql.PointsReconcilerRepo{DB: mysql.DB},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

// Run 对账定时任务启动器
func (r *PointsReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

// 对账一次，游标扫全表
func (r *PointsReconciler) reconcileOnce(ctx context.Context) {
	var lastID uint64
	for {
		members, next, err := r.repo.ReconcileList(ctx, r.batchSize, lastID)
		if err != nil {
			log.Printf("points reconcile list err: %v", err)
			return
		}
		if len(members) == 0 {
			return
		}
		for _, m := range members {
			real, err := r.repo.RealPoints(ctx, m.ID)
			if err != nil {
				continue
			}
			if real < 0 {
				real = 0
			}
			if real != m.Points {
				if err := r.repo.ReconcilePoints(ctx, m.ID, real); err != nil {
					log.Printf("points reconcile member %d err: %v", m.ID, err)
				}
			}
		}
		lastID = next
	}
}
