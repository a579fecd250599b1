package service

import (
	"context"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/repository/mysql"
)

type ActivityService struct {
	repo *mysql.ActivityRepository
}

func NewActivityService() *ActivityService {
	return &ActivityService{
		repo: &mysql.ActivityRepository{DB: mysql.DB},
	}
}

// Recent 审计流水，时间倒序
func (s *ActivityService) Recent(ctx context.Context, page, size int) ([]model.Activity, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListRecent(ctx, (page-1)*size, size)
}
