package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillflip/internal/database"
	"skillflip/internal/domain"
	"skillflip/internal/repository"
)

func setupService(t *testing.T) (*Service, *repository.SkillRepository, *repository.BookingRepository) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	skills := repository.NewSkillRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)
	users := repository.NewUserRepository(db)

	return NewService(skills, bookings, reviews, users), skills, bookings
}

func seedSkill(t *testing.T, skills *repository.SkillRepository, approved bool) *domain.Skill {
	t.Helper()
	s := &domain.Skill{
		Title:       "Sourdough basics",
		Description: "Keep a starter alive",
		CreatorID:   "creator-1",
		CategoryID:  1,
		Price:       45,
		Duration:    60,
		SessionType: domain.SessionBoth,
		IsActive:    true,
		IsApproved:  approved,
	}
	require.NoError(t, skills.Create(context.Background(), s))
	return s
}

func TestGetStats(t *testing.T) {
	service, skills, bookings := setupService(t)
	ctx := context.Background()

	seedSkill(t, skills, true)
	seedSkill(t, skills, false)

	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.Create(ctx, &domain.Booking{
		LearnerID: "learner-1", CreatorID: "creator-1", SkillID: 1,
		SessionDate: base, Duration: 60,
		TotalAmount: 45, PlatformFee: 11.25, CreatorEarnings: 33.75,
		Status: domain.BookingCompleted, PaymentStatus: domain.PaymentPaid,
	}))
	require.NoError(t, bookings.Create(ctx, &domain.Booking{
		LearnerID: "learner-2", CreatorID: "creator-1", SkillID: 1,
		SessionDate: base.Add(2 * time.Hour), Duration: 60,
		TotalAmount: 45, PlatformFee: 11.25, CreatorEarnings: 33.75,
		Status: domain.BookingPending, PaymentStatus: domain.PaymentPending,
	}))

	stats, err := service.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalSkills)
	assert.Equal(t, int64(1), stats.PendingSkills)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.CompletedBookings)
	assert.Equal(t, 45.0, stats.TotalRevenue)
	assert.Equal(t, 11.25, stats.PlatformEarnings)
	assert.Equal(t, int64(0), stats.TotalReviews)
}

func TestApproveSkill(t *testing.T) {
	service, skills, _ := setupService(t)
	ctx := context.Background()

	s := seedSkill(t, skills, false)

	got, err := service.ApproveSkill(ctx, s.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
	assert.True(t, got.Bookable())

	pending, err := service.GetPendingSkills(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveSkill_Missing(t *testing.T) {
	service, _, _ := setupService(t)

	_, err := service.ApproveSkill(context.Background(), 12345, true)
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestFeatureSkill(t *testing.T) {
	service, skills, _ := setupService(t)
	ctx := context.Background()

	s := seedSkill(t, skills, true)

	got, err := service.FeatureSkill(ctx, s.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsFeatured)

	got, err = service.FeatureSkill(ctx, s.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsFeatured)
}
