package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confschedule/internal/domain"
)

type roomService struct {
	roomRepo domain.RoomRepository
}

// NewRoomService creates a RoomService backed by the given repository.
func NewRoomService(roomRepo domain.RoomRepository) domain.RoomService {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) CreateRoom(ctx context.Context, name string) (*domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	room := domain.NewRoom(name, now, now)
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}
