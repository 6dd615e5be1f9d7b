package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skillflip/internal/domain"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/scheduling"
)

type Service struct {
	bookings BookingRepository
	skills   SkillReader
	slots    SlotChecker
	prices   *pricing.Service
	notifs   NotificationSender
	clock    scheduling.Clock
}

func NewService(
	bookings BookingRepository,
	skills SkillReader,
	slots SlotChecker,
	prices *pricing.Service,
	notifs NotificationSender,
	clock scheduling.Clock,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		bookings: bookings,
		skills:   skills,
		slots:    slots,
		prices:   prices,
		notifs:   notifs,
		clock:    clock,
	}
}

// CreateBooking runs the full admission pipeline: skill gates, session type,
// duration, slot confirmation, pricing, then the insert. The unique index on
// (creator_id, session_date) backstops the slot check, so two concurrent
// requests for the same slot cannot both land.
func (s *Service) CreateBooking(ctx context.Context, learnerID string, req CreateBookingRequest) (*domain.Booking, error) {
	skill, err := s.skills.GetByID(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	if !skill.Bookable() {
		return nil, ErrSkillUnavailable
	}
	if skill.CreatorID == learnerID {
		return nil, ErrValidation
	}

	sessionType, ok := domain.ParseSessionType(req.SessionType)
	if !ok || !skill.SessionType.Supports(sessionType) {
		return nil, ErrUnsupportedSessionType
	}

	duration := req.Duration
	if duration == 0 {
		duration = skill.Duration
	}
	if !pricing.DurationSupported(duration) {
		return nil, pricing.ErrInvalidDuration
	}

	open, err := s.slots.IsSlotOpen(ctx, skill.CreatorID, req.SessionDate, duration)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSlotUnavailable
	}

	quote, err := s.prices.Quote(skill.Price, duration)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		LearnerID:       learnerID,
		CreatorID:       skill.CreatorID,
		SkillID:         skill.ID,
		SessionDate:     req.SessionDate,
		Duration:        duration,
		SessionType:     sessionType,
		Location:        req.Location,
		TotalAmount:     quote.TotalAmount,
		PlatformFee:     quote.PlatformFee,
		CreatorEarnings: quote.CreatorEarnings,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		Notes:           req.Notes,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.CreatorID, b.ID, b.SessionDate)
	}

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, actorID string, actorRole domain.Role, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canView(b, actorID, actorRole) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListAsLearner(ctx context.Context, learnerID string) ([]domain.Booking, error) {
	return s.bookings.ListByLearner(ctx, learnerID)
}

func (s *Service) ListAsCreator(ctx context.Context, creatorID string) ([]domain.Booking, error) {
	return s.bookings.ListByCreator(ctx, creatorID)
}

// statusTransitions is the booking lifecycle. Refunds only apply after
// completion; everything else either moves forward or cancels.
var statusTransitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending:    {domain.BookingConfirmed, domain.BookingCancelled},
	domain.BookingConfirmed:  {domain.BookingInProgress, domain.BookingCompleted, domain.BookingCancelled},
	domain.BookingInProgress: {domain.BookingCompleted, domain.BookingCancelled},
	domain.BookingCompleted:  {domain.BookingRefunded},
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a booking through its lifecycle. Learners may only
// cancel; creators drive the rest; admins may do anything.
func (s *Service) UpdateStatus(ctx context.Context, actorID string, actorRole domain.Role, id int64, newStatus domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !canTransition(b, actorID, actorRole, newStatus) {
		return nil, ErrForbidden
	}
	if !transitionAllowed(b.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingStatusChanged(ctx, b.LearnerID, b.ID, newStatus)
	}

	return s.bookings.GetByID(ctx, id)
}

// paymentTransitions mirrors the payment provider's lifecycle.
var paymentTransitions = map[domain.PaymentStatus][]domain.PaymentStatus{
	domain.PaymentPending: {domain.PaymentPaid, domain.PaymentFailed},
	domain.PaymentFailed:  {domain.PaymentPending},
	domain.PaymentPaid:    {domain.PaymentRefunded},
}

// UpdatePaymentStatus is called by the payment webhook, never by end users.
// The internal-token middleware guards the route.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id int64, newStatus domain.PaymentStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed := false
	for _, next := range paymentTransitions[b.PaymentStatus] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidStatusTransition
	}

	return s.bookings.UpdatePaymentStatus(ctx, id, newStatus)
}

func canView(b *domain.Booking, actorID string, actorRole domain.Role) bool {
	return actorRole == domain.RoleAdmin || b.LearnerID == actorID || b.CreatorID == actorID
}

func canTransition(b *domain.Booking, actorID string, actorRole domain.Role, to domain.BookingStatus) bool {
	if actorRole == domain.RoleAdmin {
		return true
	}
	if b.LearnerID == actorID {
		return to == domain.BookingCancelled
	}
	return b.CreatorID == actorID
}

// isUniqueViolation recognizes the (creator_id, session_date) index firing,
// both as a typed postgres error and as the string sqlite produces.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
