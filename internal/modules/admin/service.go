package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type Service struct {
	skills   SkillRepository
	bookings BookingRepository
	reviews  ReviewRepository
	users    UserRepository
}

func NewService(skills SkillRepository, bookings BookingRepository, reviews ReviewRepository, users UserRepository) *Service {
	return &Service{skills: skills, bookings: bookings, reviews: reviews, users: users}
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalSkills       int64   `json:"total_skills"`
	PendingSkills     int64   `json:"pending_skills"`
	TotalBookings     int64   `json:"total_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	PlatformEarnings  float64 `json:"platform_earnings"`
	TotalReviews      int64   `json:"total_reviews"`
	AverageRating     float64 `json:"average_rating"`
}

func (s *Service) GetStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	udb := s.users.DB().WithContext(ctx)
	if err := udb.Table("users").Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	db := s.skills.DB().WithContext(ctx)
	if err := db.Table("skills").Count(&stats.TotalSkills).Error; err != nil {
		return nil, err
	}
	if err := db.Table("skills").Where("is_approved = ?", false).Count(&stats.PendingSkills).Error; err != nil {
		return nil, err
	}

	bdb := s.bookings.DB().WithContext(ctx)
	if err := bdb.Table("bookings").Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := bdb.Table("bookings").
		Where("status = ?", string(domain.BookingCompleted)).
		Count(&stats.CompletedBookings).Error; err != nil {
		return nil, err
	}

	// Revenue counts only money that actually moved.
	money := struct {
		Revenue  float64
		Earnings float64
	}{}
	if err := bdb.Table("bookings").
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(platform_fee), 0) AS earnings").
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Scan(&money).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = money.Revenue
	stats.PlatformEarnings = money.Earnings

	rdb := s.reviews.DB().WithContext(ctx)
	rating := struct {
		Count int64
		Avg   float64
	}{}
	if err := rdb.Table("reviews").
		Select("COUNT(1) AS count, COALESCE(AVG(rating), 0) AS avg").
		Scan(&rating).Error; err != nil {
		return nil, err
	}
	stats.TotalReviews = rating.Count
	stats.AverageRating = rating.Avg

	return stats, nil
}

func (s *Service) GetPendingSkills(ctx context.Context) ([]domain.Skill, error) {
	return s.skills.ListPending(ctx)
}

func (s *Service) ApproveSkill(ctx context.Context, id int64, approved bool) (*domain.Skill, error) {
	if err := s.skills.SetApproved(ctx, id, approved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return s.skills.GetByID(ctx, id)
}

func (s *Service) FeatureSkill(ctx context.Context, id int64, featured bool) (*domain.Skill, error) {
	if err := s.skills.SetFeatured(ctx, id, featured); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return s.skills.GetByID(ctx, id)
}
