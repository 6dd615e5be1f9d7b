package availability

import (
	"context"
	"time"

	"skillflip/internal/domain"
)

// AvailabilityRepository persists weekly schedules.
type AvailabilityRepository interface {
	ListForCreator(ctx context.Context, creatorID string) ([]domain.AvailabilityWindow, error)
	ReplaceForCreator(ctx context.Context, creatorID string, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error)
}

// BookingReader exposes the bookings needed for conflict filtering.
type BookingReader interface {
	ListForCreatorBetween(ctx context.Context, creatorID string, from, to time.Time) ([]domain.Booking, error)
}
