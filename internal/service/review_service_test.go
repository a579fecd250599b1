package service

import (
	"context"
	"sync"
	"testing"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture() (*ReviewService, *fakeAssets, *fakeLedger, map[uint64]*model.Member) {
	members := map[uint64]*model.Member{
		1: {ID: 1, Role: model.RoleCreator, Name: "Ana", IsActive: true},
		9: {ID: 9, Role: model.RoleReviewer, Name: "Rui", IsActive: true},
	}
	ledger := newFakeLedger(members)
	assets := &fakeAssets{assets: map[uint64]*model.Asset{}, members: members, ledger: ledger}
	svc := &ReviewService{assets: assets, boards: &fakeBoards{}}
	return svc, assets, ledger, members
}

func pendingAsset(assets *fakeAssets, creatorID uint64) *model.Asset {
	a := &model.Asset{
		CreatorID: creatorID,
		Type:      model.AssetTypeVideo,
		Topic:     model.TopicDeepfake,
		Title:     "Spot the deepfake",
		Status:    model.AssetPending,
	}
	_ = assets.Create(context.Background(), a, "Ana")
	return a
}

func TestComputeOverall(t *testing.T) {
	cases := []struct {
		accuracy, context, citations, want int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 0},  // 1/3 -> 0
		{1, 1, 0, 1},  // 2/3 -> 1
		{2, 1, 2, 2},  // 5/3 -> 2
		{3, 2, 3, 3},  // 8/3 -> 3
		{4, 1, 4, 3},  // 9/3 -> 3
		{4, 2, 4, 3},  // 10/3 -> 3
	}
	for _, tc := range cases {
		rev := model.AssetReview{Accuracy: tc.accuracy, Context: tc.context, Citations: tc.citations}
		assert.Equal(t, tc.want, rev.ComputeOverall(),
			"accuracy=%d context=%d citations=%d", tc.accuracy, tc.context, tc.citations)
	}
}

func TestApproveScoresAndCredits(t *testing.T) {
	svc, assets, ledger, members := newReviewFixture()
	a := pendingAsset(assets, 1)

	got, err := svc.Approve(context.Background(), a.ID, ReviewInput{
		ReviewerID: 9, Accuracy: 3, Context: 2, Citations: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AssetApproved, got.Status)
	assert.Equal(t, 3, got.Score)
	assert.Equal(t, 3, got.Review.Overall)
	assert.Equal(t, uint64(9), got.Review.ReviewerID)
	assert.True(t, got.HasReview())

	// 创作者一条流水，积分同步
	sum, err := ledger.SumByMember(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3*PointsPerScore), sum)
	assert.Equal(t, sum, members[1].Points)
}

func TestRejectNeverCredits(t *testing.T) {
	svc, assets, ledger, members := newReviewFixture()
	a := pendingAsset(assets, 1)

	got, err := svc.Reject(context.Background(), a.ID, ReviewInput{
		ReviewerID: 9, Accuracy: 1, Context: 0, Citations: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AssetRejected, got.Status)
	assert.Equal(t, 1, got.Score) // 分数照记
	assert.True(t, got.HasReview())

	sum, err := ledger.SumByMember(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, sum)
	assert.Zero(t, members[1].Points)
}

func TestApproveMissingAsset(t *testing.T) {
	svc, _, _, _ := newReviewFixture()
	_, err := svc.Approve(context.Background(), 42, ReviewInput{ReviewerID: 9, Accuracy: 3, Context: 2, Citations: 3})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestApproveTwiceConflicts(t *testing.T) {
	svc, assets, ledger, _ := newReviewFixture()
	a := pendingAsset(assets, 1)

	_, err := svc.Approve(context.Background(), a.ID, ReviewInput{ReviewerID: 9, Accuracy: 3, Context: 2, Citations: 3})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), a.ID, ReviewInput{ReviewerID: 9, Accuracy: 4, Context: 2, Citations: 4})
	assert.ErrorIs(t, err, pkg.ErrConflict)

	// 不能重复记分
	sum, _ := ledger.SumByMember(context.Background(), 1)
	assert.Equal(t, int64(3*PointsPerScore), sum)
}

func TestRejectThenApproveConflicts(t *testing.T) {
	svc, assets, _, _ := newReviewFixture()
	a := pendingAsset(assets, 1)

	_, err := svc.Reject(context.Background(), a.ID, ReviewInput{ReviewerID: 9})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), a.ID, ReviewInput{ReviewerID: 9, Accuracy: 4, Context: 2, Citations: 4})
	assert.ErrorIs(t, err, pkg.ErrConflict)
}

func TestReviewScoresOutOfRange(t *testing.T) {
	svc, assets, _, _ := newReviewFixture()
	a := pendingAsset(assets, 1)

	cases := []ReviewInput{
		{ReviewerID: 9, Accuracy: 5, Context: 2, Citations: 3},
		{ReviewerID: 9, Accuracy: 3, Context: 3, Citations: 3},
		{ReviewerID: 9, Accuracy: 3, Context: 2, Citations: -1},
	}
	for _, in := range cases {
		_, err := svc.Approve(context.Background(), a.ID, in)
		assert.ErrorIs(t, err, pkg.ErrValidation)
	}
}

func TestConcurrentApproveSingleWinner(t *testing.T) {
	svc, assets, ledger, _ := newReviewFixture()
	a := pendingAsset(assets, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(context.Background(), a.ID, ReviewInput{
				ReviewerID: 9, Accuracy: 3, Context: 2, Citations: 3,
			})
		}(i)
	}
	wg.Wait()

	var okCount, conflictCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, pkg.ErrConflict):
			conflictCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)

	sum, _ := ledger.SumByMember(context.Background(), 1)
	assert.Equal(t, int64(3*PointsPerScore), sum)
}
