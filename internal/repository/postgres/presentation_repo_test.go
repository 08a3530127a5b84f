package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"confschedule/internal/domain"
)

func TestPresentationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	desc := "About things."

	t.Run("inserts presentation and presenter associations", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		p := &domain.Presentation{
			Title:       "Talk",
			Description: &desc,
			Presenters: []*domain.User{
				{ID: "u-1", Username: "alice", Role: domain.RolePresenter},
				{ID: "u-2", Username: "bob", Role: domain.RolePresenter},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO presentations \(title, description, created_at, updated_at\)`).
			WithArgs("Talk", &desc, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))
		mock.ExpectExec(`INSERT INTO presentation_presenters`).
			WithArgs("p-1", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO presentation_presenters`).
			WithArgs("p-1", "u-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewPresentationRepository(db)
		require.NoError(t, repo.Create(ctx, p))
		require.Equal(t, "p-1", p.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on association failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		p := &domain.Presentation{
			Title:      "Talk",
			Presenters: []*domain.User{{ID: "u-1"}},
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO presentations`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))
		mock.ExpectExec(`INSERT INTO presentation_presenters`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewPresentationRepository(db)
		require.Error(t, repo.Create(ctx, p))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPresentationRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("replaces presenter set when provided", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		p := &domain.Presentation{
			ID:         "p-1",
			Title:      "Renamed",
			Presenters: []*domain.User{{ID: "u-2"}},
			UpdatedAt:  now,
		}

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE presentations`).
			WithArgs("p-1", "Renamed", nil, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM presentation_presenters`).
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO presentation_presenters`).
			WithArgs("p-1", "u-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewPresentationRepository(db)
		require.NoError(t, repo.Update(ctx, p))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown presentation", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE presentations`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewPresentationRepository(db)
		err = repo.Update(ctx, &domain.Presentation{ID: "missing", Title: "x", UpdatedAt: now})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPresentationRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM presentations WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPresentationRepository(db)
		require.NoError(t, repo.Delete(ctx, "p-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM presentations WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPresentationRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}

func TestPresentationRepository_HasPresenter(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("p-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("p-1", "u-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewPresentationRepository(db)
	ok, err := repo.HasPresenter(ctx, "p-1", "u-1")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.HasPresenter(ctx, "p-1", "u-2")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
