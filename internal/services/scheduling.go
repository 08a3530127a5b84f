package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"confschedule/internal/domain"
)

type schedulingService struct {
	userRepo         domain.UserRepository
	roomRepo         domain.RoomRepository
	presentationRepo domain.PresentationRepository
	scheduleRepo     domain.ScheduleRepository
	checker          *ConflictChecker
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewSchedulingService creates a SchedulingService. The email service is used
// for best-effort registration confirmations and may be backed by a noop mailer.
func NewSchedulingService(
	userRepo domain.UserRepository,
	roomRepo domain.RoomRepository,
	presentationRepo domain.PresentationRepository,
	scheduleRepo domain.ScheduleRepository,
	checker *ConflictChecker,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.SchedulingService {
	return &schedulingService{
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		presentationRepo: presentationRepo,
		scheduleRepo:     scheduleRepo,
		checker:          checker,
		emailService:     emailService,
		logger:           logger,
	}
}

func (s *schedulingService) SchedulePresentation(ctx context.Context, presentationID, presenterID, roomID string, start, end time.Time) (*domain.ScheduleEntry, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", domain.ErrInvalidInput)
	}

	isPresenter, err := s.presentationRepo.HasPresenter(ctx, presentationID, presenterID)
	if err != nil {
		return nil, fmt.Errorf("check presenter: %w", err)
	}
	if !isPresenter {
		return nil, domain.ErrNotFound
	}

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}

	// Advisory pre-check; placement re-checks inside its transaction so two
	// concurrent overlapping placements cannot both pass.
	conflict, err := s.checker.HasConflict(ctx, roomID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, domain.ErrScheduleConflict
	}

	now := time.Now().UTC()
	entry := domain.NewScheduleEntry(presentationID, roomID, start, end, now, now)
	if err := s.scheduleRepo.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrScheduleConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create schedule entry: %w", err)
	}
	entry.Listeners = []*domain.User{}
	return entry, nil
}

func (s *schedulingService) RegisterListener(ctx context.Context, username, entryID string) (*domain.ScheduleEntry, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role != domain.RoleListener {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.scheduleRepo.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule entry: %w", err)
	}

	// Registering twice is a no-op; the listener set has set semantics.
	if err := s.scheduleRepo.AddListener(ctx, entryID, user.ID); err != nil {
		return nil, fmt.Errorf("add listener: %w", err)
	}

	entry, err := s.scheduleRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("reload schedule entry: %w", err)
	}

	s.sendConfirmation(ctx, user, entry)
	return entry, nil
}

// sendConfirmation emails the listener about the registration. Best effort:
// a mail failure never fails the registration.
func (s *schedulingService) sendConfirmation(ctx context.Context, user *domain.User, entry *domain.ScheduleEntry) {
	if user.Email == nil {
		return
	}
	presentation, err := s.presentationRepo.GetByID(ctx, entry.PresentationID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation mail skipped", "entry_id", entry.ID, "err", err)
		return
	}
	room, err := s.roomRepo.GetByID(ctx, entry.RoomID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation mail skipped", "entry_id", entry.ID, "err", err)
		return
	}
	data := &domain.RegistrationEmailData{
		Email:             *user.Email,
		Username:          user.Username,
		PresentationTitle: presentation.Title,
		RoomName:          room.Name,
		StartTime:         entry.StartTime.Format(time.RFC1123),
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation mail failed", "entry_id", entry.ID, "err", err)
	}
}
