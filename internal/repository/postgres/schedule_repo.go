package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confschedule/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

// CreateEntry places the entry inside one transaction. The room row is locked
// first, which serializes placements per room: the overlap re-check and the
// insert are atomic with respect to concurrent placements into the same room.
// The schedule_entries_no_overlap exclusion constraint rejects the loser even
// if the lock path is ever bypassed.
func (r *scheduleRepository) CreateEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roomID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, entry.RoomID).Scan(&roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	overlapQuery := `
		SELECT EXISTS (
			SELECT 1 FROM schedule_entries
			WHERE room_id = $1 AND start_time < $3 AND end_time > $2
		)
	`
	var conflict bool
	if err := tx.QueryRowContext(ctx, overlapQuery, entry.RoomID, entry.StartTime, entry.EndTime).Scan(&conflict); err != nil {
		return err
	}
	if conflict {
		return domain.ErrScheduleConflict
	}

	insertQuery := `
		INSERT INTO schedule_entries (presentation_id, room_id, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		entry.PresentationID, entry.RoomID, entry.StartTime, entry.EndTime, entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if isPQError(err, pqExclusionViolation) {
			return domain.ErrScheduleConflict
		}
		return err
	}
	return tx.Commit()
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `
		SELECT id, presentation_id, room_id, start_time, end_time, created_at, updated_at
		FROM schedule_entries
		WHERE id = $1
	`
	entry := &domain.ScheduleEntry{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.PresentationID, &entry.RoomID,
		&entry.StartTime, &entry.EndTime, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachListeners(ctx, []*domain.ScheduleEntry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *scheduleRepository) ListByRoom(ctx context.Context, roomID string) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, presentation_id, room_id, start_time, end_time, created_at, updated_at
		FROM schedule_entries
		WHERE room_id = $1
		ORDER BY start_time, id
	`
	rows, err := r.DB.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduleEntries(rows)
}

func (r *scheduleRepository) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, presentation_id, room_id, start_time, end_time, created_at, updated_at
		FROM schedule_entries
		ORDER BY room_id, start_time, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries, err := scanScheduleEntries(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachListeners(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scheduleRepository) AddListener(ctx context.Context, entryID, userID string) error {
	query := `
		INSERT INTO schedule_listeners (schedule_entry_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (schedule_entry_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, entryID, userID)
	return err
}

func (r *scheduleRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_entries`).Scan(&n)
	return n, err
}

func scanScheduleEntries(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	var entries []*domain.ScheduleEntry
	for rows.Next() {
		entry := &domain.ScheduleEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.PresentationID, &entry.RoomID,
			&entry.StartTime, &entry.EndTime, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entry.Listeners = []*domain.User{}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// attachListeners resolves the listener set for each entry with a single
// association query.
func (r *scheduleRepository) attachListeners(ctx context.Context, entries []*domain.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	query := `
		SELECT sl.schedule_entry_id, u.id, u.username, u.role, u.created_at, u.updated_at
		FROM schedule_listeners sl
		INNER JOIN users u ON u.id = sl.user_id
		WHERE sl.schedule_entry_id = ANY($1)
		ORDER BY u.username
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	listenersByEntry := make(map[string][]*domain.User)
	for rows.Next() {
		var entryID, role string
		u := &domain.User{}
		if err := rows.Scan(&entryID, &u.ID, &u.Username, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		u.Role = domain.Role(role)
		listenersByEntry[entryID] = append(listenersByEntry[entryID], u)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, entry := range entries {
		if listeners := listenersByEntry[entry.ID]; listeners != nil {
			entry.Listeners = listeners
		}
	}
	return nil
}
