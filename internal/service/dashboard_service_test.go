package service

import (
	"context"
	"testing"
	"time"

	"MilCan_Platform/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc := &DashboardService{
		stats: &fakeStats{
			activeCreators: 7,
			byStatus: map[string]int64{
				model.AssetPending:  3,
				model.AssetApproved: 12,
				model.AssetRejected: 5,
			},
			monthlyViews: 40100,
			totalMembers: 25,
			totalEvents:  4,
		},
		now: func() time.Time { return now },
	}

	got, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.ActiveCreators)
	assert.Equal(t, int64(3), got.PendingReview)
	assert.Equal(t, int64(12), got.ApprovedContent)
	assert.Equal(t, int64(40100), got.MonthlyViews)
	assert.Equal(t, int64(25), got.TotalMembers)
	assert.Equal(t, int64(4), got.TotalEvents)
	assert.Equal(t, now, got.LastUpdated)
}

func TestComputeStatsEmpty(t *testing.T) {
	svc := &DashboardService{
		stats: &fakeStats{byStatus: map[string]int64{}},
		now:   time.Now,
	}
	got, err := svc.ComputeStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.PendingReview)
	assert.Zero(t, got.MonthlyViews)
}
