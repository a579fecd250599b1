package service

import (
	"context"
	"encoding/json"
	"fmt"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
	"MilCan_Platform/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	members  *mysql.MemberRepository
	rSession *redis.SessionRepository
	emailSvc *EmailService
}

func NewAuthService(emailSvc *EmailService) *AuthService {
	return &AuthService{
		members:  &mysql.MemberRepository{DB: mysql.DB},
		rSession: &redis.SessionRepository{},
		emailSvc: emailSvc,
	}
}

// RegisterInput 开放注册默认creator角色
type RegisterInput struct {
	Name      string
	Email     string
	Handle    string
	Password  string
	Campus    string
	Languages []string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.Member, error) {
	if in.Name == "" || in.Email == "" || in.Handle == "" {
		return nil, fmt.Errorf("%w: name, email and handle required", pkg.ErrValidation)
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
		Role:      model.RoleCreator,
		Name:      in.Name,
		Email:     in.Email,
		Handle:    in.Handle,
		Password:  string(hash),
		Campus:    in.Campus,
		Languages: string(langs),
		IsActive:  true,
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AuthService) Login(ctx context.Context, login, password string) (*pkg.Pair, error) {
	m, err := s.members.FindByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("%w: member", pkg.ErrNotFound)
	}
	if !m.IsActive {
		return nil, fmt.Errorf("%w: member deactivated", pkg.ErrConflict)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid password", pkg.ErrValidation)
	}
	// 将token写入redis
	token, err := pkg.GeneratePair(m.ID, m.Role)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddToken(m.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) Logout(memberID uint64) error {
	return s.rSession.DeleteToken(memberID)
}

func (s *AuthService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddToken(claims.MemberID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResetPassword 验证码通过后重置密码
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyResetCode(email, code)
	if err != nil || !ok {
		return fmt.Errorf("%w: verification failed", pkg.ErrValidation)
	}

	m, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password too short", pkg.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.members.UpdatePassword(ctx, m.ID, string(hash))
}

// ChangePassword 登录态修改密码，改完踢掉会话
func (s *AuthService) ChangePassword(ctx context.Context, memberID uint64, oldPassword, newPassword string) error {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password is incorrect", pkg.ErrValidation)
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password too short", pkg.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.members.UpdatePassword(ctx, memberID, string(hash)); err != nil {
		return err
	}
	return s.Logout(memberID)
}
