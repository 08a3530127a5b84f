package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confschedule/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, role, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Username, string(u.Role), u.Email, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if isPQError(err, pqUniqueViolation) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, username, role, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, role, email, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, username))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var role string
	var emailNull sql.NullString
	err := row.Scan(&u.ID, &u.Username, &role, &emailNull, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.Role(role)
	if emailNull.Valid {
		u.Email = &emailNull.String
	}
	return u, nil
}

func (r *userRepository) ListByUsernames(ctx context.Context, usernames []string, role domain.Role) ([]*domain.User, error) {
	query := `
		SELECT id, username, role, email, created_at, updated_at
		FROM users
		WHERE username = ANY($1) AND role = $2
		ORDER BY username
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(usernames), string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		var roleStr string
		var emailNull sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &roleStr, &emailNull, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Role = domain.Role(roleStr)
		if emailNull.Valid {
			u.Email = &emailNull.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
