package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
)

// fakeMembers in-memory memberReader
type fakeMembers struct {
	members map[uint64]*model.Member
}

func (f *fakeMembers) FindByID(_ context.Context, id uint64) (*model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return m, nil
}

// fakeAssets mirrors the repository's CAS semantics so conflict
// behavior can be exercised without a database.
type fakeAssets struct {
	mu      sync.Mutex
	assets  map[uint64]*model.Asset
	members map[uint64]*model.Member
	ledger  *fakeLedger
}

func (f *fakeAssets) Create(_ context.Context, a *model.Asset, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uint64(len(f.assets) + 1)
	a.CreatedAt = time.Now()
	f.assets[a.ID] = a
	return nil
}

func (f *fakeAssets) FindByID(_ context.Context, id uint64) (*model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assets[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssets) List(_ context.Context, status string, creatorID uint64, _, _ int) ([]model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Asset
	for _, a := range f.assets {
		if status != "" && a.Status != status {
			continue
		}
		if creatorID > 0 && a.CreatorID != creatorID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssets) UpdateMonthlyViews(_ context.Context, id uint64, views int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assets[id]
	if !ok {
		return pkg.ErrNotFound
	}
	a.MonthlyViews = views
	return nil
}

func (f *fakeAssets) ApplyReview(_ context.Context, assetID uint64, out mysql.ReviewOutcome) (*model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assets[assetID]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	if a.Status != model.AssetPending {
		return nil, pkg.ErrConflict
	}
	now := time.Now()
	if out.Approve {
		a.Status = model.AssetApproved
		a.ApprovedAt = &now
		a.ApprovedBy = out.Review.ReviewerID
	} else {
		a.Status = model.AssetRejected
	}
	a.Score = out.Review.Overall
	a.Review = out.Review
	a.Review.ReviewedAt = now

	if out.Approve && f.ledger != nil {
		_, err := f.ledger.Award(context.Background(), &model.LedgerEntry{
			MemberID: a.CreatorID,
			Points:   out.AwardPoints,
			Reason:   "asset approved",
			RefType:  model.RefTypeAsset,
			RefID:    a.ID,
			DedupKey: fmt.Sprintf("asset:%d", a.ID),
		})
		if err != nil {
			return nil, err
		}
	}
	cp := *a
	return &cp, nil
}

// fakeLedger keeps member totals in sync with entries, like the
// real transaction does.
type fakeLedger struct {
	mu      sync.Mutex
	entries []model.LedgerEntry
	dedup   map[string]bool
	members map[uint64]*model.Member
}

func newFakeLedger(members map[uint64]*model.Member) *fakeLedger {
	return &fakeLedger{dedup: map[string]bool{}, members: members}
}

func (f *fakeLedger) Award(_ context.Context, entry *model.LedgerEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dedup[entry.DedupKey] {
		return false, nil
	}
	m, ok := f.members[entry.MemberID]
	if !ok {
		return false, pkg.ErrNotFound
	}
	f.dedup[entry.DedupKey] = true
	entry.ID = uint64(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	m.Points += entry.Points
	if m.Points < 0 {
		m.Points = 0
	}
	return true, nil
}

func (f *fakeLedger) ListByMember(_ context.Context, memberID uint64, _, _ int) ([]model.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LedgerEntry
	for _, e := range f.entries {
		if e.MemberID == memberID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) SumByMember(_ context.Context, memberID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, e := range f.entries {
		if e.MemberID == memberID {
			sum += e.Points
		}
	}
	return sum, nil
}

// fakeBoards records leaderboard increments
type fakeBoards struct {
	mu     sync.Mutex
	deltas map[uint64]int64
}

func (f *fakeBoards) IncrScore(_ context.Context, memberID uint64, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deltas == nil {
		f.deltas = map[uint64]int64{}
	}
	f.deltas[memberID] += delta
	return nil
}

// fakeInvites in-memory inviteStore
type fakeInvites struct {
	mu      sync.Mutex
	nextID  uint64
	byToken map[string]*model.Invitation
	mails   []model.EmailOutbox
	members []model.Member
}

func newFakeInvites() *fakeInvites {
	return &fakeInvites{byToken: map[string]*model.Invitation{}}
}

func (f *fakeInvites) Create(_ context.Context, inv *model.Invitation, mail *model.EmailOutbox) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	inv.ID = f.nextID
	inv.CreatedAt = time.Now()
	f.byToken[inv.Token] = inv
	f.mails = append(f.mails, *mail)
	return nil
}

func (f *fakeInvites) FindByToken(_ context.Context, token string) (*model.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byToken[token]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvites) MarkExpired(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.byToken {
		if inv.ID == id && inv.Status == model.InvitationPending {
			inv.Status = model.InvitationExpired
		}
	}
	return nil
}

func (f *fakeInvites) Accept(_ context.Context, invID uint64, m *model.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.byToken {
		if inv.ID != invID {
			continue
		}
		if inv.Status != model.InvitationPending {
			return pkg.ErrAlreadyUsed
		}
		now := time.Now()
		inv.Status = model.InvitationAccepted
		inv.AcceptedAt = &now
		m.ID = uint64(len(f.members) + 1)
		f.members = append(f.members, *m)
		return nil
	}
	return pkg.ErrAlreadyUsed
}

func (f *fakeInvites) ListByInviter(_ context.Context, inviterID uint64, _, _ int) ([]model.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Invitation
	for _, inv := range f.byToken {
		if inv.InvitedBy == inviterID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

// fakeStats fixed counters for the dashboard
type fakeStats struct {
	activeCreators int64
	byStatus       map[string]int64
	monthlyViews   int64
	totalMembers   int64
	totalEvents    int64
}

func (f *fakeStats) CountActiveCreators(context.Context) (int64, error) { return f.activeCreators, nil }
func (f *fakeStats) CountAssetsByStatus(_ context.Context, status string) (int64, error) {
	return f.byStatus[status], nil
}
func (f *fakeStats) SumMonthlyViews(context.Context) (int64, error) { return f.monthlyViews, nil }
func (f *fakeStats) CountMembers(context.Context) (int64, error)    { return f.totalMembers, nil }
func (f *fakeStats) CountEvents(context.Context) (int64, error)     { return f.totalEvents, nil }
