package booking

import (
	"context"
	"time"

	"skillflip/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByLearner(ctx context.Context, learnerID string) ([]domain.Booking, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error)
}

// SkillReader looks up the skill being booked.
type SkillReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
}

// SlotChecker answers whether a session can still start at the given time.
type SlotChecker interface {
	IsSlotOpen(ctx context.Context, creatorID string, start time.Time, durationMinutes int) (bool, error)
}

// NotificationSender is optional; a nil sender silently disables notifications.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, creatorID string, bookingID int64, start time.Time) error
	NotifyBookingStatusChanged(ctx context.Context, learnerID string, bookingID int64, status domain.BookingStatus) error
}
