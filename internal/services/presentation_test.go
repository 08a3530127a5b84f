package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confschedule/internal/domain"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestPresentationService_CreatePresentation(t *testing.T) {
	desc := "A talk about things."

	tests := []struct {
		name       string
		title      string
		desc       *string
		presenters []string
		wantErr    error
	}{
		{
			name:       "single presenter",
			title:      "Talk A",
			desc:       &desc,
			presenters: []string{"alice"},
		},
		{
			name:       "multiple presenters",
			title:      "Panel",
			presenters: []string{"alice", "bob"},
		},
		{
			name:       "duplicate usernames are collapsed",
			title:      "Talk B",
			presenters: []string{"alice", "alice"},
		},
		{
			name:       "empty title",
			title:      "  ",
			presenters: []string{"alice"},
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "no presenters",
			title:      "Talk C",
			presenters: nil,
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "unknown presenter fails the whole set",
			title:      "Talk D",
			presenters: []string{"alice", "ghost"},
			wantErr:    domain.ErrInvalidInput,
		},
		{
			name:       "listener cannot present",
			title:      "Talk E",
			presenters: []string{"carol"},
			wantErr:    domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := newFakeUserRepo()
			seedUser(t, userRepo, "alice", domain.RolePresenter)
			seedUser(t, userRepo, "bob", domain.RolePresenter)
			seedUser(t, userRepo, "carol", domain.RoleListener)
			svc := NewPresentationService(newFakePresentationRepo(), userRepo)

			p, err := svc.CreatePresentation(context.Background(), tt.title, tt.desc, tt.presenters)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, p.ID)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.desc, p.Description)
			assert.NotEmpty(t, p.Presenters)
			for _, pr := range p.Presenters {
				assert.Equal(t, domain.RolePresenter, pr.Role)
			}
		})
	}
}

func TestPresentationService_CreatePresentation_DedupesPresenters(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "alice", domain.RolePresenter)
	svc := NewPresentationService(newFakePresentationRepo(), userRepo)

	p, err := svc.CreatePresentation(context.Background(), "Talk", nil, []string{"alice", " alice ", "alice"})
	require.NoError(t, err)
	assert.Len(t, p.Presenters, 1)
}

func TestPresentationService_UpdatePresentation(t *testing.T) {
	newTitle := "Renamed"
	emptyTitle := "  "
	newDesc := "Updated description."

	setup := func(t *testing.T) (domain.PresentationService, *domain.Presentation) {
		userRepo := newFakeUserRepo()
		seedUser(t, userRepo, "alice", domain.RolePresenter)
		seedUser(t, userRepo, "bob", domain.RolePresenter)
		repo := newFakePresentationRepo()
		svc := NewPresentationService(repo, userRepo)
		p, err := svc.CreatePresentation(context.Background(), "Original", nil, []string{"alice"})
		require.NoError(t, err)
		return svc, p
	}

	t.Run("update title only", func(t *testing.T) {
		svc, p := setup(t)
		updated, err := svc.UpdatePresentation(context.Background(), p.ID, domain.PresentationUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Len(t, updated.Presenters, 1, "presenters untouched")
	})

	t.Run("update description only", func(t *testing.T) {
		svc, p := setup(t)
		updated, err := svc.UpdatePresentation(context.Background(), p.ID, domain.PresentationUpdate{Description: &newDesc})
		require.NoError(t, err)
		assert.Equal(t, "Original", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, newDesc, *updated.Description)
	})

	t.Run("replace presenter set", func(t *testing.T) {
		svc, p := setup(t)
		updated, err := svc.UpdatePresentation(context.Background(), p.ID, domain.PresentationUpdate{
			PresenterUsernames: []string{"bob"},
		})
		require.NoError(t, err)
		require.Len(t, updated.Presenters, 1)
		assert.Equal(t, "bob", updated.Presenters[0].Username)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc, p := setup(t)
		_, err := svc.UpdatePresentation(context.Background(), p.ID, domain.PresentationUpdate{Title: &emptyTitle})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown presenter in new set rejected", func(t *testing.T) {
		svc, p := setup(t)
		_, err := svc.UpdatePresentation(context.Background(), p.ID, domain.PresentationUpdate{
			PresenterUsernames: []string{"ghost"},
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown presentation", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.UpdatePresentation(context.Background(), "missing", domain.PresentationUpdate{Title: &newTitle})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPresentationService_DeletePresentation(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "alice", domain.RolePresenter)
	repo := newFakePresentationRepo()
	svc := NewPresentationService(repo, userRepo)

	p, err := svc.CreatePresentation(context.Background(), "Doomed", nil, []string{"alice"})
	require.NoError(t, err)

	deleted, err := svc.DeletePresentation(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)
	assert.Equal(t, "Doomed", deleted.Title)

	_, err = repo.GetByID(context.Background(), p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.DeletePresentation(context.Background(), p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
