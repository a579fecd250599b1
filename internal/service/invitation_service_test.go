package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInviteFixture(now time.Time) (*InvitationService, *fakeInvites) {
	store := newFakeInvites()
	svc := &InvitationService{
		invites: store,
		baseURL: "https://milcan.example.org",
		ttl:     30 * 24 * time.Hour,
		now:     func() time.Time { return now },
	}
	return svc, store
}

func TestCreateInvitationQueuesEmail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store := newInviteFixture(now)

	inv, err := svc.Create(context.Background(), 2, "new@campus.edu", model.RoleCreator)
	require.NoError(t, err)

	assert.NotEmpty(t, inv.Token)
	assert.Equal(t, model.InvitationPending, inv.Status)
	assert.Equal(t, now.Add(30*24*time.Hour), inv.ExpiresAt)

	require.Len(t, store.mails, 1)
	assert.Equal(t, "new@campus.edu", store.mails[0].ToAddr)
	assert.Contains(t, store.mails[0].Body, "/accept-invitation?token="+inv.Token)
}

func TestCreateInvitationRejectsBadRole(t *testing.T) {
	svc, _ := newInviteFixture(time.Now())

	_, err := svc.Create(context.Background(), 2, "x@campus.edu", model.RoleAdmin)
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Create(context.Background(), 2, "x@campus.edu", "superuser")
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestValidateUnknownToken(t *testing.T) {
	svc, _ := newInviteFixture(time.Now())
	_, err := svc.Validate(context.Background(), "nope")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestAcceptRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store := newInviteFixture(now)

	inv, err := svc.Create(context.Background(), 2, "new@campus.edu", model.RoleReviewer)
	require.NoError(t, err)

	// validate通过才accept得了
	_, err = svc.Validate(context.Background(), inv.Token)
	require.NoError(t, err)

	m, err := svc.Accept(context.Background(), inv.Token, AcceptInput{
		Name: "Nadia", Handle: "nadia", Password: "long-enough-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleReviewer, m.Role)
	assert.Equal(t, "new@campus.edu", m.Email)
	require.Len(t, store.members, 1)

	// 令牌一次性
	_, err = svc.Accept(context.Background(), inv.Token, AcceptInput{
		Name: "Other", Handle: "other", Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyUsed)
	assert.Len(t, store.members, 1)
}

func TestExpiryBoundaryInclusive(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store := newInviteFixture(created)

	inv, err := svc.Create(context.Background(), 2, "late@campus.edu", model.RoleCreator)
	require.NoError(t, err)

	// now == expiresAt 即过期
	svc.now = func() time.Time { return inv.ExpiresAt }
	_, err = svc.Validate(context.Background(), inv.Token)
	assert.ErrorIs(t, err, pkg.ErrExpired)

	// 过期状态已落库，时钟回拨也不再可用
	assert.Equal(t, model.InvitationExpired, store.byToken[inv.Token].Status)
	svc.now = func() time.Time { return created }
	_, err = svc.Validate(context.Background(), inv.Token)
	assert.ErrorIs(t, err, pkg.ErrExpired)

	_, err = svc.Accept(context.Background(), inv.Token, AcceptInput{
		Name: "Late", Handle: "late", Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, pkg.ErrExpired)
}

func TestAcceptValidatesProfile(t *testing.T) {
	svc, _ := newInviteFixture(time.Now())
	inv, err := svc.Create(context.Background(), 2, "p@campus.edu", model.RoleCreator)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), inv.Token, AcceptInput{Handle: "h", Password: "long-enough-pass"})
	assert.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.Accept(context.Background(), inv.Token, AcceptInput{Name: "P", Handle: "h", Password: "short"})
	assert.ErrorIs(t, err, pkg.ErrValidation)
}

func TestTokensAreUnique(t *testing.T) {
	svc, _ := newInviteFixture(time.Now())
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		inv, err := svc.Create(context.Background(), 2, "u@campus.edu", model.RoleCreator)
		require.NoError(t, err)
		require.False(t, seen[inv.Token])
		require.Len(t, strings.TrimSpace(inv.Token), 32)
		seen[inv.Token] = true
	}
}
