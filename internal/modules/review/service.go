package review

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
}

func NewService(reviews ReviewRepository, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// CreateReview lets the learner who attended a completed session rate it.
// One review per booking; the unique index enforces it under races.
func (s *Service) CreateReview(ctx context.Context, learnerID string, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.LearnerID != learnerID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	rv := &domain.Review{
		BookingID: b.ID,
		LearnerID: learnerID,
		CreatorID: b.CreatorID,
		SkillID:   b.SkillID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IsPublic:  isPublic,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListBySkill(ctx context.Context, skillID int64) ([]domain.Review, error) {
	return s.reviews.ListBySkill(ctx, skillID)
}

func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]domain.Review, error) {
	return s.reviews.ListByCreator(ctx, creatorID)
}

// CreatorRating is the aggregate shown on creator profiles.
type CreatorRating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func (s *Service) GetCreatorRating(ctx context.Context, creatorID string) (*CreatorRating, error) {
	avg, count, err := s.reviews.AverageRatingForCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return &CreatorRating{Average: avg, Count: count}, nil
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
