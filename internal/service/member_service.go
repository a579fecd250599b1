package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
	rediscache "MilCan_Platform/internal/repository/redis"

	"github.com/redis/go-redis/v9"
)

type MemberService struct {
	members *mysql.MemberRepository
	boards  *rediscache.LeaderboardRepository
}

func NewMemberService() *MemberService {
	return &MemberService{
		members: &mysql.MemberRepository{DB: mysql.DB},
		boards:  rediscache.NewLeaderboardRepository(),
	}
}

func (s *MemberService) Get(ctx context.Context, id uint64) (*model.Member, error) {
	return s.members.FindByID(ctx, id)
}

// UpdateProfileInput 资料字段，零值表示不改
type UpdateProfileInput struct {
	Name      string
	Campus    string
	Languages []string
}

func (s *MemberService) UpdateProfile(ctx context.Context, id uint64, in UpdateProfileInput) error {
	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Campus != "" {
		fields["campus"] = in.Campus
	}
	if in.Languages != nil {
		langs, _ := json.Marshal(in.Languages)
		fields["languages"] = string(langs)
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: nothing to update", pkg.ErrValidation)
	}
	return s.members.UpdateProfile(ctx, id, fields)
}

// Deactivate 软停用，榜单缓存直接作废
func (s *MemberService) Deactivate(ctx context.Context, id uint64) error {
	if err := s.members.Deactivate(ctx, id); err != nil {
		return err
	}
	if err := s.boards.Invalidate(ctx); err != nil {
		log.Printf("leaderboard invalidate err: %v", err)
	}
	return nil
}

// LeaderboardEntry 排行榜展示行
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Campus string `json:"campus"`
	Points int64  `json:"points"`
}

// Leaderboard 先读ZSET缓存，未命中从MySQL取并整体重建
func (s *MemberService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if zs, cached, err := s.boards.Top(ctx, int64(limit)); err == nil && cached {
		return s.fromCache(ctx, zs)
	}

	// 回源并重建
	members, err := s.members.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	rebuild := make([]redis.Z, 0, len(members))
	out := make([]LeaderboardEntry, 0, len(members))
	for i, m := range members {
		rebuild = append(rebuild, redis.Z{Score: float64(m.Points), Member: strconv.FormatUint(m.ID, 10)})
		out = append(out, LeaderboardEntry{
			Rank: i + 1, ID: m.ID, Name: m.Name, Handle: m.Handle, Campus: m.Campus, Points: m.Points,
		})
	}
	if err := s.boards.Rebuild(ctx, rebuild); err != nil {
		log.Printf("leaderboard rebuild err: %v", err)
	}
	return out, nil
}

func (s *MemberService) fromCache(ctx context.Context, zs []redis.Z) ([]LeaderboardEntry, error) {
	ids := make([]uint64, 0, len(zs))
	for _, z := range zs {
		id, err := strconv.ParseUint(fmt.Sprint(z.Member), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	byID, err := s.members.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, 0, len(zs))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok || !m.IsActive {
			continue
		}
		out = append(out, LeaderboardEntry{
			Rank: len(out) + 1, ID: m.ID, Name: m.Name, Handle: m.Handle, Campus: m.Campus, Points: m.Points,
		})
	}
	return out, nil
}
