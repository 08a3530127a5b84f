package domain

import (
	"context"
	"time"
)

// Room represents a physical room presentations are scheduled into.
// swagger:model Room
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRoom returns a new Room with the given name. ID is typically set by the repository on create.
func NewRoom(name string, createdAt, updatedAt time.Time) *Room {
	return &Room{
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Count(ctx context.Context) (int, error)
}

// RoomService defines the business logic for room management.
type RoomService interface {
	CreateRoom(ctx context.Context, name string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
}
