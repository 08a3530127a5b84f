package services

import (
	"context"
	"errors"
	"fmt"

	"confschedule/internal/domain"
)

type scheduleQueryService struct {
	userRepo         domain.UserRepository
	roomRepo         domain.RoomRepository
	presentationRepo domain.PresentationRepository
	scheduleRepo     domain.ScheduleRepository
}

// NewScheduleQueryService creates the read-side query service.
func NewScheduleQueryService(
	userRepo domain.UserRepository,
	roomRepo domain.RoomRepository,
	presentationRepo domain.PresentationRepository,
	scheduleRepo domain.ScheduleRepository,
) domain.ScheduleQueryService {
	return &scheduleQueryService{
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		presentationRepo: presentationRepo,
		scheduleRepo:     scheduleRepo,
	}
}

func (s *scheduleQueryService) ListPresentations(ctx context.Context, params domain.PaginationParams) ([]*domain.Presentation, int, error) {
	presentations, total, err := s.presentationRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list presentations: %w", err)
	}
	if presentations == nil {
		presentations = []*domain.Presentation{}
	}
	return presentations, total, nil
}

func (s *scheduleQueryService) PresentationsByPresenter(ctx context.Context, presenterID string) ([]*domain.Presentation, error) {
	user, err := s.userRepo.GetByID(ctx, presenterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role != domain.RolePresenter {
		return nil, domain.ErrNotFound
	}

	presentations, err := s.presentationRepo.ListByPresenterID(ctx, presenterID)
	if err != nil {
		return nil, fmt.Errorf("list presentations by presenter: %w", err)
	}
	if presentations == nil {
		presentations = []*domain.Presentation{}
	}
	return presentations, nil
}

// SchedulesByRoom groups every schedule entry under its room. Entries within
// a room are ordered by start time; rooms without entries are included with
// an empty list.
func (s *scheduleQueryService) SchedulesByRoom(ctx context.Context) ([]*domain.RoomSchedule, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	entries, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}

	entriesByRoom := make(map[string][]*domain.ScheduleEntry)
	for _, entry := range entries {
		entriesByRoom[entry.RoomID] = append(entriesByRoom[entry.RoomID], entry)
	}

	schedules := make([]*domain.RoomSchedule, 0, len(rooms))
	for _, room := range rooms {
		roomEntries := entriesByRoom[room.ID]
		if roomEntries == nil {
			roomEntries = []*domain.ScheduleEntry{}
		}
		schedules = append(schedules, &domain.RoomSchedule{
			Room:    room,
			Entries: roomEntries,
		})
	}
	return schedules, nil
}
