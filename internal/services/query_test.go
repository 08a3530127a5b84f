package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confschedule/internal/domain"
)

func TestScheduleQueryService_ListPresentations_Pagination(t *testing.T) {
	userRepo := newFakeUserRepo()
	alice := seedUser(t, userRepo, "alice", domain.RolePresenter)
	repo := newFakePresentationRepo()
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		p := &domain.Presentation{Title: title, Presenters: []*domain.User{alice}}
		require.NoError(t, repo.Create(ctx, p))
	}
	svc := NewScheduleQueryService(userRepo, newFakeRoomRepo(), repo, newFakeScheduleRepo())

	page1, total, err := svc.ListPresentations(ctx, domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := svc.ListPresentations(ctx, domain.PaginationParams{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page3, 1)

	beyond, total, err := svc.ListPresentations(ctx, domain.PaginationParams{Page: 10, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestScheduleQueryService_PresentationsByPresenter(t *testing.T) {
	userRepo := newFakeUserRepo()
	alice := seedUser(t, userRepo, "alice", domain.RolePresenter)
	bob := seedUser(t, userRepo, "bob", domain.RolePresenter)
	carol := seedUser(t, userRepo, "carol", domain.RoleListener)
	repo := newFakePresentationRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &domain.Presentation{Title: "Solo", Presenters: []*domain.User{alice}}))
	require.NoError(t, repo.Create(ctx, &domain.Presentation{Title: "Panel", Presenters: []*domain.User{alice, bob}}))
	svc := NewScheduleQueryService(userRepo, newFakeRoomRepo(), repo, newFakeScheduleRepo())

	t.Run("presenter with two presentations", func(t *testing.T) {
		got, err := svc.PresentationsByPresenter(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
	t.Run("presenter with one presentation", func(t *testing.T) {
		got, err := svc.PresentationsByPresenter(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.PresentationsByPresenter(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("listener id is not a presenter", func(t *testing.T) {
		_, err := svc.PresentationsByPresenter(ctx, carol.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestScheduleQueryService_SchedulesByRoom(t *testing.T) {
	userRepo := newFakeUserRepo()
	roomRepo := newFakeRoomRepo()
	presentationRepo := newFakePresentationRepo()
	scheduleRepo := newFakeScheduleRepo()
	ctx := context.Background()

	hall := &domain.Room{Name: "Main Hall"}
	require.NoError(t, roomRepo.Create(ctx, hall))
	empty := &domain.Room{Name: "Workshop A"}
	require.NoError(t, roomRepo.Create(ctx, empty))

	now := time.Now().UTC()
	late := domain.NewScheduleEntry("p-1", hall.ID, at(t, 14, 0), at(t, 15, 0), now, now)
	early := domain.NewScheduleEntry("p-1", hall.ID, at(t, 9, 0), at(t, 10, 0), now, now)
	require.NoError(t, scheduleRepo.CreateEntry(ctx, late))
	require.NoError(t, scheduleRepo.CreateEntry(ctx, early))

	svc := NewScheduleQueryService(userRepo, roomRepo, presentationRepo, scheduleRepo)
	schedules, err := svc.SchedulesByRoom(ctx)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	byName := make(map[string]*domain.RoomSchedule)
	for _, s := range schedules {
		byName[s.Room.Name] = s
	}

	hallSchedule := byName["Main Hall"]
	require.NotNil(t, hallSchedule)
	require.Len(t, hallSchedule.Entries, 2)
	assert.True(t, hallSchedule.Entries[0].StartTime.Before(hallSchedule.Entries[1].StartTime),
		"entries must be ordered by start time")

	emptySchedule := byName["Workshop A"]
	require.NotNil(t, emptySchedule)
	assert.NotNil(t, emptySchedule.Entries)
	assert.Empty(t, emptySchedule.Entries, "rooms without entries appear with an empty list")
}
