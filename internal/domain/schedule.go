package domain

import (
	"context"
	"time"
)

// ScheduleEntry assigns a presentation to a room for the half-open window
// [StartTime, EndTime). Entries in the same room never overlap.
// swagger:model ScheduleEntry
type ScheduleEntry struct {
	ID             string    `json:"id"`
	PresentationID string    `json:"presentation_id"`
	RoomID         string    `json:"room_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	// Listeners is the set of registered listeners, populated on reads that
	// resolve associations.
	Listeners []*User   `json:"listeners,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewScheduleEntry returns a new ScheduleEntry. ID is typically set by the repository on create.
func NewScheduleEntry(presentationID, roomID string, start, end time.Time, createdAt, updatedAt time.Time) *ScheduleEntry {
	return &ScheduleEntry{
		PresentationID: presentationID,
		RoomID:         roomID,
		StartTime:      start,
		EndTime:        end,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// RoomSchedule groups a room's schedule entries, ordered by start time.
type RoomSchedule struct {
	Room    *Room            `json:"room"`
	Entries []*ScheduleEntry `json:"entries"`
}

// ScheduleRepository defines the interface for schedule entry storage,
// including the listener association table.
type ScheduleRepository interface {
	// CreateEntry persists the entry inside a single transaction that locks
	// the room row and re-checks for overlapping entries, so that of two
	// concurrent overlapping placements exactly one succeeds. Returns
	// ErrNotFound when the room does not exist and ErrScheduleConflict when
	// the window overlaps a committed entry.
	CreateEntry(ctx context.Context, entry *ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*ScheduleEntry, error)
	// ListByRoom returns the room's entries ordered by start time.
	ListByRoom(ctx context.Context, roomID string) ([]*ScheduleEntry, error)
	// List returns all entries with listeners resolved, ordered by room and
	// start time.
	List(ctx context.Context) ([]*ScheduleEntry, error)
	// AddListener attaches the user to the entry's listener set. Adding an
	// existing listener is a no-op.
	AddListener(ctx context.Context, entryID, userID string) error
	Count(ctx context.Context) (int, error)
}

// SchedulingService defines the business logic for presentation placement and
// listener registration.
type SchedulingService interface {
	SchedulePresentation(ctx context.Context, presentationID, presenterID, roomID string, start, end time.Time) (*ScheduleEntry, error)
	RegisterListener(ctx context.Context, username, entryID string) (*ScheduleEntry, error)
}

// ScheduleQueryService defines the read-side views over presentations and
// schedules.
type ScheduleQueryService interface {
	ListPresentations(ctx context.Context, params PaginationParams) ([]*Presentation, int, error)
	PresentationsByPresenter(ctx context.Context, presenterID string) ([]*Presentation, error)
	SchedulesByRoom(ctx context.Context) ([]*RoomSchedule, error)
}
