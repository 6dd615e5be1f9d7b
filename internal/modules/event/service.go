package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skillflip/internal/domain"
	"skillflip/internal/repository"
	"skillflip/internal/scheduling"
)

type Service struct {
	events EventRepository
	clock  scheduling.Clock
}

func NewService(events EventRepository, clock scheduling.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{events: events, clock: clock}
}

func (s *Service) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListUpcoming(ctx, s.clock())
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	if req.MaxAttendees <= 0 {
		return nil, fmt.Errorf("%w: max_attendees must be positive", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if !req.EventDate.After(s.clock()) {
		return nil, fmt.Errorf("%w: event_date must be in the future", ErrValidation)
	}

	e := &domain.Event{
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate,
		Location:     req.Location,
		Price:        req.Price,
		MaxAttendees: req.MaxAttendees,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Register claims a seat. The repository's guarded update handles the
// capacity race; the unique index handles double registration.
func (s *Service) Register(ctx context.Context, userID string, eventID int64) (*domain.EventRegistration, error) {
	e, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !e.IsActive || !e.EventDate.After(s.clock()) {
		return nil, ErrEventInactive
	}

	registered, err := s.events.IsRegistered(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	paymentStatus := domain.PaymentPaid
	if e.Price > 0 {
		paymentStatus = domain.PaymentPending
	}

	reg := &domain.EventRegistration{
		EventID:          eventID,
		UserID:           userID,
		RegistrationDate: s.clock(),
		PaymentStatus:    paymentStatus,
	}
	if err := s.events.Register(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repository.ErrEventFull):
			return nil, ErrEventFull
		case isUniqueViolation(err):
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return reg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
