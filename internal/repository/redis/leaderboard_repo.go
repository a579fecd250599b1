package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LeaderboardKey = "leaderboard:points"
	LeaderboardTTL = 10 * time.Minute
)

// LeaderboardRepository 积分榜ZSET缓存。写路径在加分后增量维护，
// 读路径未命中时由service从MySQL重建
type LeaderboardRepository struct {
	ttl time.Duration
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{ttl: LeaderboardTTL}
}

// IncrScore 加分后增量更新，失败忽略，读侧重建兜底
func (r *LeaderboardRepository) IncrScore(ctx context.Context, memberID uint64, delta int64) error {
	if err := Client.ZIncrBy(ctx, LeaderboardKey, float64(delta), memberIDField(memberID)).Err(); err != nil {
		return err
	}
	return Client.Expire(ctx, LeaderboardKey, r.ttl).Err()
}

// Top 取前n名，cached=false表示缓存不存在需要重建
func (r *LeaderboardRepository) Top(ctx context.Context, n int64) ([]redis.Z, bool, error) {
	exists, err := Client.Exists(ctx, LeaderboardKey).Result()
	if err != nil {
		return nil, false, err
	}
	if exists == 0 {
		return nil, false, nil
	}
	zs, err := Client.ZRevRangeWithScores(ctx, LeaderboardKey, 0, n-1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	return zs, true, err
}

// Rebuild 用MySQL查出的榜单整体重建
func (r *LeaderboardRepository) Rebuild(ctx context.Context, members []redis.Z) error {
	pipe := Client.TxPipeline()
	pipe.Del(ctx, LeaderboardKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, LeaderboardKey, members...)
	}
	pipe.Expire(ctx, LeaderboardKey, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Invalidate 停用成员等场景直接删掉缓存，交给读侧重建
func (r *LeaderboardRepository) Invalidate(ctx context.Context) error {
	err := Client.Del(ctx, LeaderboardKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func memberIDField(id uint64) string {
	return strconv.FormatUint(id, 10)
}
