package service

import (
	"context"
	"testing"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetFixture() (*AssetService, *fakeAssets) {
	members := map[uint64]*model.Member{
		1: {ID: 1, Role: model.RoleCreator, Name: "Ana", IsActive: true},
		2: {ID: 2, Role: model.RoleReviewer, Name: "Rui", IsActive: true},
		3: {ID: 3, Role: model.RoleCreator, Name: "Off", IsActive: false},
	}
	assets := &fakeAssets{assets: map[uint64]*model.Asset{}, members: members}
	svc := &AssetService{assets: assets, members: &fakeMembers{members: members}}
	return svc, assets
}

func TestSubmitStartsPendingZeroScore(t *testing.T) {
	svc, _ := newAssetFixture()

	a, err := svc.Submit(context.Background(), SubmitInput{
		CreatorID:   1,
		Type:        model.AssetTypeVideo,
		Topic:       model.TopicDeepfake,
		Title:       "Spot the deepfake",
		Citations:   []string{"https://example.org/source"},
		HasCaptions: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AssetPending, a.Status)
	assert.Zero(t, a.Score)
	assert.False(t, a.HasReview())
	assert.NotZero(t, a.ID)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newAssetFixture()
	ctx := context.Background()

	base := SubmitInput{CreatorID: 1, Type: model.AssetTypeVideo, Topic: model.TopicDeepfake, Title: "t"}

	in := base
	in.Title = ""
	_, err := svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrValidation)

	in = base
	in.Type = "podcast"
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrValidation)

	in = base
	in.Topic = "astrology"
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrValidation)

	// 评审员不能投稿
	in = base
	in.CreatorID = 2
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrValidation)

	// 停用成员不能投稿
	in = base
	in.CreatorID = 3
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrConflict)

	in = base
	in.CreatorID = 99
	_, err = svc.Submit(ctx, in)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUpdateMonthlyViews(t *testing.T) {
	svc, _ := newAssetFixture()
	ctx := context.Background()

	a, err := svc.Submit(ctx, SubmitInput{
		CreatorID: 1, Type: model.AssetTypeCarousel, Topic: model.TopicAdTransparency, Title: "t",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateMonthlyViews(ctx, a.ID, 1200))
	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.MonthlyViews)

	assert.ErrorIs(t, svc.UpdateMonthlyViews(ctx, a.ID, -1), pkg.ErrValidation)
	assert.ErrorIs(t, svc.UpdateMonthlyViews(ctx, 99, 10), pkg.ErrNotFound)
}
