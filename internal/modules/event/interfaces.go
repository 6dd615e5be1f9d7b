package event

import (
	"context"
	"time"

	"skillflip/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error)
	Register(ctx context.Context, reg *domain.EventRegistration) error
	IsRegistered(ctx context.Context, eventID int64, userID string) (bool, error)
}
