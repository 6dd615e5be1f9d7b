package review

import (
	"context"

	"skillflip/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListBySkill(ctx context.Context, skillID int64) ([]domain.Review, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Review, error)
	AverageRatingForCreator(ctx context.Context, creatorID string) (avg float64, count int64, err error)
}

// BookingGate verifies the review is backed by a real, finished session.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
