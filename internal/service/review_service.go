package service

import (
	"context"
	"fmt"
	"log"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
	"MilCan_Platform/internal/repository/redis"
)

// PointsPerScore 过审内容按overall分值折算积分
const PointsPerScore = 10

type leaderboardCache interface {
	IncrScore(ctx context.Context, memberID uint64, delta int64) error
}

type ReviewService struct {
	assets assetStore
	boards leaderboardCache
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		assets: &mysql.AssetRepository{DB: mysql.DB},
		boards: redis.NewLeaderboardRepository(),
	}
}

// ReviewInput 评审员打分
type ReviewInput struct {
	ReviewerID uint64
	Accuracy   int
	Context    int
	Citations  int
	Notes      string
}

// Approve pending->approved，同一事务内给创作者记积分
func (s *ReviewService) Approve(ctx context.Context, assetID uint64, in ReviewInput) (*model.Asset, error) {
	return s.apply(ctx, assetID, in, true)
}

// Reject pending->rejected，分数照记但不给积分
func (s *ReviewService) Reject(ctx context.Context, assetID uint64, in ReviewInput) (*model.Asset, error) {
	return s.apply(ctx, assetID, in, false)
}

func (s *ReviewService) apply(ctx context.Context, assetID uint64, in ReviewInput, approve bool) (*model.Asset, error) {
	if assetID == 0 || in.ReviewerID == 0 {
		return nil, fmt.Errorf("%w: invalid id", pkg.ErrValidation)
	}
	rev := model.AssetReview{
		Accuracy:   in.Accuracy,
		Context:    in.Context,
		Citations:  in.Citations,
		Notes:      in.Notes,
		ReviewerID: in.ReviewerID,
	}
	if !rev.InRange() {
		return nil, fmt.Errorf("%w: scores out of range (accuracy 0-4, context 0-2, citations 0-4)", pkg.ErrValidation)
	}
	rev.Overall = rev.ComputeOverall()

	out := mysql.ReviewOutcome{
		Review:  rev,
		Approve: approve,
	}
	if approve {
		out.AwardPoints = int64(rev.Overall) * PointsPerScore
	}

	a, err := s.assets.ApplyReview(ctx, assetID, out)
	if err != nil {
		return nil, err
	}

	// 积分榜增量更新，失败只记日志，读侧重建兜底
	if approve && s.boards != nil && out.AwardPoints > 0 {
		if err := s.boards.IncrScore(ctx, a.CreatorID, out.AwardPoints); err != nil {
			log.Printf("leaderboard incr err: %v", err)
		}
	}
	return a, nil
}
