package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
)

type inviteStore interface {
	Create(ctx context.Context, inv *model.Invitation, mail *model.EmailOutbox) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	MarkExpired(ctx context.Context, id uint64) error
	Accept(ctx context.Context, invID uint64, m *model.Member) error
	ListByInviter(ctx context.Context, inviterID uint64, offset, limit int) ([]model.Invitation, error)
}

type InvitationService struct {
	invites inviteStore
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewInvitationService(baseURL string, ttl time.Duration) *InvitationService {
	return &InvitationService{
		invites: &mysql.InvitationRepository{DB: mysql.DB},
		baseURL: baseURL,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create 邀请记录先落库，邮件进outbox由relayer发送；
// 发信失败只体现在outbox状态上，不会让邀请创建失败
func (s *InvitationService) Create(ctx context.Context, inviterID uint64, email, role string) (*model.Invitation, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email required", pkg.ErrValidation)
	}
	if !model.ValidRole(role) || role == model.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot invite role %q", pkg.ErrValidation, role)
	}

	token, err := pkg.RandToken(16)
	if err != nil {
		return nil, err
	}
	now := s.now()
	inv := &model.Invitation{
		Email:     email,
		Role:      role,
		InvitedBy: inviterID,
		Status:    model.InvitationPending,
		Token:     token,
		ExpiresAt: now.Add(s.ttl),
	}

	acceptURL := fmt.Sprintf("%s/accept-invitation?token=%s", s.baseURL, token)
	mail := &model.EmailOutbox{
		ToAddr:  email,
		Subject: "MIL-CAN 社区邀请",
		Body:    pkg.InviteHTML(role, acceptURL, s.ttl),
		Status:  model.OutboxPending,
	}

	if err := s.invites.Create(ctx, inv, mail); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate 令牌校验。过期边界取闭区间：now == expiresAt 也算过期，
// 并且发现过期立即落库，后续校验直接走状态
func (s *InvitationService) Validate(ctx context.Context, token string) (*model.Invitation, error) {
	inv, err := s.invites.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case model.InvitationAccepted:
		return nil, fmt.Errorf("%w: invitation", pkg.ErrAlreadyUsed)
	case model.InvitationExpired:
		return nil, fmt.Errorf("%w: invitation", pkg.ErrExpired)
	}
	if !s.now().Before(inv.ExpiresAt) {
		_ = s.invites.MarkExpired(ctx, inv.ID)
		return nil, fmt.Errorf("%w: invitation", pkg.ErrExpired)
	}
	return inv, nil
}

// AcceptInput 受邀人补充的资料
type AcceptInput struct {
	Name      string
	Handle    string
	Password  string
	Campus    string
	Languages []string
}

// Accept 重新校验后建档。令牌单次有效，二次调用报ErrAlreadyUsed
func (s *InvitationService) Accept(ctx context.Context, token string, in AcceptInput) (*model.Member, error) {
	inv, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.Handle == "" {
		return nil, fmt.Errorf("%w: name and handle required", pkg.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password too short", pkg.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	langs, _ := json.Marshal(in.Languages)

	m := &model.Member{
		Role:      inv.Role,
		Name:      in.Name,
		Email:     inv.Email,
		Handle:    in.Handle,
		Password:  string(hash),
		Campus:    in.Campus,
		Languages: string(langs),
		IsActive:  true,
	}
	if err := s.invites.Accept(ctx, inv.ID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *InvitationService) ListByInviter(ctx context.Context, inviterID uint64, page, size int) ([]model.Invitation, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.invites.ListByInviter(ctx, inviterID, (page-1)*size, size)
}
