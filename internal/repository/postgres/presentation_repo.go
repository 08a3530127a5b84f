package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confschedule/internal/domain"
)

type presentationRepository struct {
	DB *sql.DB
}

func NewPresentationRepository(db *sql.DB) domain.PresentationRepository {
	return &presentationRepository{DB: db}
}

func (r *presentationRepository) Create(ctx context.Context, p *domain.Presentation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO presentations (title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, p.Title, p.Description, p.CreatedAt, p.UpdatedAt).Scan(&p.ID); err != nil {
		return err
	}
	for _, presenter := range p.Presenters {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO presentation_presenters (presentation_id, user_id) VALUES ($1, $2)`,
			p.ID, presenter.ID,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *presentationRepository) GetByID(ctx context.Context, id string) (*domain.Presentation, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM presentations
		WHERE id = $1
	`
	p := &domain.Presentation{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &descNull, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		p.Description = &descNull.String
	}
	if err := r.attachPresenters(ctx, []*domain.Presentation{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *presentationRepository) Update(ctx context.Context, p *domain.Presentation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE presentations
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, query, p.ID, p.Title, p.Description, p.UpdatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if p.Presenters != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM presentation_presenters WHERE presentation_id = $1`, p.ID,
		); err != nil {
			return err
		}
		for _, presenter := range p.Presenters {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO presentation_presenters (presentation_id, user_id) VALUES ($1, $2)`,
				p.ID, presenter.ID,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (r *presentationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM presentations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *presentationRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Presentation, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM presentations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM presentations
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	presentations, err := scanPresentations(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachPresenters(ctx, presentations); err != nil {
		return nil, 0, err
	}
	return presentations, total, nil
}

func (r *presentationRepository) ListByPresenterID(ctx context.Context, presenterID string) ([]*domain.Presentation, error) {
	query := `
		SELECT p.id, p.title, p.description, p.created_at, p.updated_at
		FROM presentations p
		INNER JOIN presentation_presenters pp ON pp.presentation_id = p.id
		WHERE pp.user_id = $1
		ORDER BY p.created_at, p.id
	`
	rows, err := r.DB.QueryContext(ctx, query, presenterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	presentations, err := scanPresentations(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachPresenters(ctx, presentations); err != nil {
		return nil, err
	}
	return presentations, nil
}

func (r *presentationRepository) HasPresenter(ctx context.Context, presentationID, presenterID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM presentation_presenters
			WHERE presentation_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, presentationID, presenterID).Scan(&exists)
	return exists, err
}

func (r *presentationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM presentations`).Scan(&n)
	return n, err
}

func scanPresentations(rows *sql.Rows) ([]*domain.Presentation, error) {
	var presentations []*domain.Presentation
	for rows.Next() {
		p := &domain.Presentation{}
		var descNull sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &descNull, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			p.Description = &descNull.String
		}
		p.Presenters = []*domain.User{}
		presentations = append(presentations, p)
	}
	return presentations, rows.Err()
}

// attachPresenters resolves the presenter set for each presentation with a
// single association query.
func (r *presentationRepository) attachPresenters(ctx context.Context, presentations []*domain.Presentation) error {
	if len(presentations) == 0 {
		return nil
	}
	ids := make([]string, 0, len(presentations))
	for _, p := range presentations {
		ids = append(ids, p.ID)
	}
	query := `
		SELECT pp.presentation_id, u.id, u.username, u.role, u.created_at, u.updated_at
		FROM presentation_presenters pp
		INNER JOIN users u ON u.id = pp.user_id
		WHERE pp.presentation_id = ANY($1)
		ORDER BY u.username
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	presentersByID := make(map[string][]*domain.User)
	for rows.Next() {
		var presentationID, role string
		u := &domain.User{}
		if err := rows.Scan(&presentationID, &u.ID, &u.Username, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		u.Role = domain.Role(role)
		presentersByID[presentationID] = append(presentersByID[presentationID], u)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, p := range presentations {
		if presenters := presentersByID[p.ID]; presenters != nil {
			p.Presenters = presenters
		}
	}
	return nil
}
