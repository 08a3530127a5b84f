// Package seed loads a small demo fixture for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"confschedule/internal/domain"
)

// Services bundles the application services the seeder drives. Going through
// the services keeps seeded data subject to the same validation as API input.
type Services struct {
	Users         domain.UserService
	Rooms         domain.RoomService
	Presentations domain.PresentationService
	Scheduling    domain.SchedulingService
}

// Repos exposes the counts the seeder checks before writing anything.
type Repos struct {
	Users domain.UserRepository
	Rooms domain.RoomRepository
}

// Run inserts demo users, rooms, presentations and schedule entries. It is a
// no-op when the database already holds users or rooms, so it is safe to run
// on every start with the flag enabled.
func Run(ctx context.Context, svcs Services, repos Repos, logger *slog.Logger) error {
	userCount, err := repos.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	roomCount, err := repos.Rooms.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if userCount > 0 || roomCount > 0 {
		logger.InfoContext(ctx, "seed skipped, database not empty", "users", userCount, "rooms", roomCount)
		return nil
	}

	presenters := []string{"alice", "bob"}
	listeners := []string{"carol", "dave"}
	for _, username := range presenters {
		if _, err := svcs.Users.CreateUser(ctx, username, domain.RolePresenter, nil); err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
	}
	for _, username := range listeners {
		email := username + "@example.com"
		if _, err := svcs.Users.CreateUser(ctx, username, domain.RoleListener, &email); err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
	}

	roomNames := []string{"Main Hall", "Workshop A", "Workshop B", "Auditorium"}
	rooms := make(map[string]*domain.Room, len(roomNames))
	for _, name := range roomNames {
		room, err := svcs.Rooms.CreateRoom(ctx, name)
		if err != nil {
			return fmt.Errorf("seed room %s: %w", name, err)
		}
		rooms[name] = room
	}

	goDesc := "An introduction to concurrency patterns."
	fixtures := []struct {
		title       string
		description *string
		presenters  []string
	}{
		{"Concurrency in Practice", &goDesc, []string{"alice"}},
		{"Designing Schedulers", nil, []string{"bob"}},
		{"Panel: Lessons Learned", nil, []string{"alice", "bob"}},
	}
	presentations := make([]*domain.Presentation, 0, len(fixtures))
	for _, f := range fixtures {
		p, err := svcs.Presentations.CreatePresentation(ctx, f.title, f.description, f.presenters)
		if err != nil {
			return fmt.Errorf("seed presentation %s: %w", f.title, err)
		}
		presentations = append(presentations, p)
	}

	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	placements := []struct {
		presentation *domain.Presentation
		room         *domain.Room
		start, end   time.Time
	}{
		{presentations[0], rooms["Main Hall"], day.Add(9 * time.Hour), day.Add(10 * time.Hour)},
		{presentations[1], rooms["Main Hall"], day.Add(10 * time.Hour), day.Add(11 * time.Hour)},
	}
	for _, p := range placements {
		presenterID := p.presentation.Presenters[0].ID
		if _, err := svcs.Scheduling.SchedulePresentation(ctx, p.presentation.ID, presenterID, p.room.ID, p.start, p.end); err != nil {
			return fmt.Errorf("seed schedule %s: %w", p.presentation.Title, err)
		}
	}

	logger.InfoContext(ctx, "seed complete",
		"users", len(presenters)+len(listeners),
		"rooms", len(roomNames),
		"presentations", len(presentations),
		"schedule_entries", len(placements),
	)
	return nil
}
