package services

import (
	"context"
	"fmt"
	"time"

	"confschedule/internal/domain"
)

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Windows that only touch at an endpoint do not
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictChecker determines whether a candidate time window collides with
// any existing schedule entry in a room. A linear scan over the room's
// entries is adequate for realistic per-room entry counts.
type ConflictChecker struct {
	scheduleRepo domain.ScheduleRepository
}

func NewConflictChecker(scheduleRepo domain.ScheduleRepository) *ConflictChecker {
	return &ConflictChecker{scheduleRepo: scheduleRepo}
}

// HasConflict returns true on the first entry in the room whose window
// overlaps [start, end). The caller is responsible for start < end; the
// checker has no side effects. This is an advisory pre-check: the
// authoritative check runs inside the placement transaction (see
// ScheduleRepository.CreateEntry).
func (c *ConflictChecker) HasConflict(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	entries, err := c.scheduleRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("list entries for room: %w", err)
	}
	for _, entry := range entries {
		if Overlaps(start, end, entry.StartTime, entry.EndTime) {
			return true, nil
		}
	}
	return false, nil
}
