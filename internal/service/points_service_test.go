package service

import (
	"context"
	"testing"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPointsFixture() (*PointsService, *fakeLedger, map[uint64]*model.Member) {
	members := map[uint64]*model.Member{
		1: {ID: 1, Role: model.RoleCreator, Name: "Ana", IsActive: true},
	}
	ledger := newFakeLedger(members)
	svc := &PointsService{
		ledger:  ledger,
		members: &fakeMembers{members: members},
		boards:  &fakeBoards{},
	}
	return svc, ledger, members
}

func TestAwardValidation(t *testing.T) {
	svc, _, _ := newPointsFixture()
	ctx := context.Background()

	_, err := svc.Award(ctx, AwardInput{MemberID: 0, Points: 10, Reason: "x", RefType: model.RefTypeBonus})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Award(ctx, AwardInput{MemberID: 1, Points: 0, Reason: "x", RefType: model.RefTypeBonus})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Award(ctx, AwardInput{MemberID: 1, Points: 10, Reason: "", RefType: model.RefTypeBonus})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Award(ctx, AwardInput{MemberID: 1, Points: 10, Reason: "x", RefType: "loot"})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Award(ctx, AwardInput{MemberID: 7, Points: 10, Reason: "x", RefType: model.RefTypeBonus})
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestAwardKeepsTotalsConsistent(t *testing.T) {
	svc, ledger, members := newPointsFixture()
	ctx := context.Background()

	applied, err := svc.Award(ctx, AwardInput{MemberID: 1, Points: 30, Reason: "workshop", RefType: model.RefTypeEvent, RefID: 5})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.Award(ctx, AwardInput{MemberID: 1, Points: 20, Reason: "bonus", RefType: model.RefTypeBonus})
	require.NoError(t, err)
	assert.True(t, applied)

	// 负分冲正
	applied, err = svc.Award(ctx, AwardInput{MemberID: 1, Points: -10, Reason: "correction", RefType: model.RefTypeAdmin})
	require.NoError(t, err)
	assert.True(t, applied)

	sum, err := ledger.SumByMember(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), sum)
	assert.Equal(t, sum, members[1].Points)

	balance, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
}

func TestAwardIdempotentByDedupKey(t *testing.T) {
	svc, ledger, members := newPointsFixture()
	ctx := context.Background()

	in := AwardInput{MemberID: 1, Points: 25, Reason: "event host", RefType: model.RefTypeEvent, RefID: 3, DedupKey: "event:3:host"}

	applied, err := svc.Award(ctx, in)
	require.NoError(t, err)
	assert.True(t, applied)

	// 同一幂等键重试不追加也不报错
	applied, err = svc.Award(ctx, in)
	require.NoError(t, err)
	assert.False(t, applied)

	entries, err := ledger.ListByMember(ctx, 1, 0, 50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(25), members[1].Points)
}
