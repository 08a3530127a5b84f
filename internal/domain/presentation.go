package domain

import (
	"context"
	"time"
)

// Presentation represents a talk given by one or more presenters. A
// presentation may be scheduled into rooms any number of times, or not at all.
// swagger:model Presentation
type Presentation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Presenters  []*User   `json:"presenters"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPresentation returns a new Presentation. ID is typically set by the repository on create.
func NewPresentation(title string, description *string, presenters []*User, createdAt, updatedAt time.Time) *Presentation {
	return &Presentation{
		Title:       title,
		Description: description,
		Presenters:  presenters,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// PresentationUpdate carries a partial update: nil fields are left untouched.
type PresentationUpdate struct {
	Title       *string
	Description *string
	// PresenterUsernames, when non-nil, replaces the presenter set.
	PresenterUsernames []string
}

// PresentationRepository defines the interface for presentation storage,
// including the presenter association table.
type PresentationRepository interface {
	// Create persists the presentation and its presenter associations.
	Create(ctx context.Context, p *Presentation) error
	GetByID(ctx context.Context, id string) (*Presentation, error)
	// Update replaces title, description and, when p.Presenters is non-nil,
	// the presenter set.
	Update(ctx context.Context, p *Presentation) error
	// Delete removes the presentation. Schedule entries and their listener
	// associations are removed by cascading foreign keys.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params PaginationParams) ([]*Presentation, int, error)
	ListByPresenterID(ctx context.Context, presenterID string) ([]*Presentation, error)
	// HasPresenter reports whether the given user is attached to the
	// presentation as a presenter.
	HasPresenter(ctx context.Context, presentationID, presenterID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PresentationService defines the business logic for presentation management.
type PresentationService interface {
	CreatePresentation(ctx context.Context, title string, description *string, presenterUsernames []string) (*Presentation, error)
	UpdatePresentation(ctx context.Context, id string, update PresentationUpdate) (*Presentation, error)
	// DeletePresentation returns the deleted presentation.
	DeletePresentation(ctx context.Context, id string) (*Presentation, error)
}
