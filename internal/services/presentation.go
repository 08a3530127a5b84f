package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confschedule/internal/domain"
)

type presentationService struct {
	presentationRepo domain.PresentationRepository
	userRepo         domain.UserRepository
}

// NewPresentationService creates a PresentationService with the given repositories.
func NewPresentationService(presentationRepo domain.PresentationRepository, userRepo domain.UserRepository) domain.PresentationService {
	return &presentationService{
		presentationRepo: presentationRepo,
		userRepo:         userRepo,
	}
}

// resolvePresenters maps usernames to users with the Presenter role.
// Resolution is all-or-nothing: any unknown username, or one belonging to a
// user without the Presenter role, fails the whole set with ErrInvalidInput.
func (s *presentationService) resolvePresenters(ctx context.Context, usernames []string) ([]*domain.User, error) {
	seen := make(map[string]struct{})
	var unique []string
	for _, name := range usernames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: at least one presenter is required", domain.ErrInvalidInput)
	}

	presenters, err := s.userRepo.ListByUsernames(ctx, unique, domain.RolePresenter)
	if err != nil {
		return nil, fmt.Errorf("resolve presenters: %w", err)
	}
	if len(presenters) != len(unique) {
		return nil, fmt.Errorf("%w: presenters not found or missing the Presenter role", domain.ErrInvalidInput)
	}
	return presenters, nil
}

func (s *presentationService) CreatePresentation(ctx context.Context, title string, description *string, presenterUsernames []string) (*domain.Presentation, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	presenters, err := s.resolvePresenters(ctx, presenterUsernames)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	presentation := domain.NewPresentation(title, description, presenters, now, now)
	if err := s.presentationRepo.Create(ctx, presentation); err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	return presentation, nil
}

func (s *presentationService) UpdatePresentation(ctx context.Context, id string, update domain.PresentationUpdate) (*domain.Presentation, error) {
	presentation, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		presentation.Title = *update.Title
	}
	if update.Description != nil {
		presentation.Description = update.Description
	}
	if update.PresenterUsernames != nil {
		presenters, err := s.resolvePresenters(ctx, update.PresenterUsernames)
		if err != nil {
			return nil, err
		}
		presentation.Presenters = presenters
	}
	presentation.UpdatedAt = time.Now().UTC()

	if err := s.presentationRepo.Update(ctx, presentation); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update presentation: %w", err)
	}
	return presentation, nil
}

func (s *presentationService) DeletePresentation(ctx context.Context, id string) (*domain.Presentation, error) {
	presentation, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}
	// Schedule entries and listener associations go with it via cascading
	// foreign keys.
	if err := s.presentationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete presentation: %w", err)
	}
	return presentation, nil
}
