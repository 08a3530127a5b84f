package domain

import (
	"context"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RolePresenter Role = "Presenter"
	RoleListener  Role = "Listener"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePresenter || r == RoleListener
}

// User represents a registered conference participant. Role is immutable
// after creation.
// swagger:model User
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	// Email is optional and only used for notification mails.
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username string, role Role, email *string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:  username,
		Role:      role,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// ListByUsernames returns the users matching the given usernames that hold
	// the given role. Missing usernames are simply absent from the result.
	ListByUsernames(ctx context.Context, usernames []string, role Role) ([]*User, error)
	Count(ctx context.Context) (int, error)
}

// UserService defines the business logic for user management.
type UserService interface {
	CreateUser(ctx context.Context, username string, role Role, email *string) (*User, error)
}
