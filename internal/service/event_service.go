package service

import (
	"context"
	"fmt"
	"time"

	"MilCan_Platform/internal/model"
	"MilCan_Platform/internal/pkg"
	"MilCan_Platform/internal/repository/mysql"
)

type EventService struct {
	events  *mysql.EventRepository
	members memberReader
}

func NewEventService() *EventService {
	return &EventService{
		events:  &mysql.EventRepository{DB: mysql.DB},
		members: &mysql.MemberRepository{DB: mysql.DB},
	}
}

type CreateEventInput struct {
	CreatedBy   uint64
	Title       string
	Description string
	Campus      string
	StartsAt    time.Time
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrValidation)
	}
	if in.StartsAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: event starts in the past", pkg.ErrValidation)
	}

	creator, err := s.members.FindByID(ctx, in.CreatedBy)
	if err != nil {
		return nil, err
	}

	e := &model.Event{
		Title:       in.Title,
		Description: in.Description,
		Campus:      in.Campus,
		StartsAt:    in.StartsAt,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.events.Create(ctx, e, creator.Name); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) ListUpcoming(ctx context.Context, page, size int) ([]model.Event, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.events.ListUpcoming(ctx, (page-1)*size, size)
}
