package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	LearnerID       string     `gorm:"column:learner_id;index"`
	CreatorID       string     `gorm:"column:creator_id;uniqueIndex:uq_bookings_creator_session"`
	SkillID         int64      `gorm:"column:skill_id"`
	SessionDate     time.Time  `gorm:"column:session_date;uniqueIndex:uq_bookings_creator_session"`
	Duration        int        `gorm:"column:duration"`
	SessionType     string     `gorm:"column:session_type"`
	Location        *string    `gorm:"column:location"`
	TotalAmount     float64    `gorm:"column:total_amount"`
	PlatformFee     float64    `gorm:"column:platform_fee"`
	CreatorEarnings float64    `gorm:"column:creator_earnings"`
	Status          string     `gorm:"column:status"`
	PaymentStatus   string     `gorm:"column:payment_status"`
	Notes           *string    `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var location, notes string
	if m.Location != nil {
		location = *m.Location
	}
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:              m.ID,
		LearnerID:       m.LearnerID,
		CreatorID:       m.CreatorID,
		SkillID:         m.SkillID,
		SessionDate:     m.SessionDate,
		Duration:        m.Duration,
		SessionType:     domain.SessionType(m.SessionType),
		Location:        location,
		TotalAmount:     m.TotalAmount,
		PlatformFee:     m.PlatformFee,
		CreatorEarnings: m.CreatorEarnings,
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		Notes:           notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CancelledAt:     m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var location, notes *string
	if b.Location != "" {
		v := b.Location
		location = &v
	}
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:              b.ID,
		LearnerID:       b.LearnerID,
		CreatorID:       b.CreatorID,
		SkillID:         b.SkillID,
		SessionDate:     b.SessionDate,
		Duration:        b.Duration,
		SessionType:     string(b.SessionType),
		Location:        location,
		TotalAmount:     b.TotalAmount,
		PlatformFee:     b.PlatformFee,
		CreatorEarnings: b.CreatorEarnings,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Notes:           notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListForCreatorBetween returns every booking for the creator whose session
// starts in [from, to), regardless of status. Callers decide which statuses
// still block a slot.
func (r *BookingRepository) ListForCreatorBetween(ctx context.Context, creatorID string, from, to time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("creator_id = ? AND session_date >= ? AND session_date < ?", creatorID, from, to).
		Order("session_date ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByLearner(ctx context.Context, learnerID string) ([]domain.Booking, error) {
	return r.list(ctx, "learner_id = ?", learnerID)
}

func (r *BookingRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Booking, error) {
	return r.list(ctx, "creator_id = ?", creatorID)
}

func (r *BookingRepository) list(ctx context.Context, cond string, arg string) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Where(cond, arg).Order("session_date DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.BookingCancelled {
		now := time.Now().UTC()
		updates["cancelled_at"] = &now
	}
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"payment_status": string(status),
		"updated_at":     time.Now().UTC(),
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	return r.GetByID(ctx, id)
}
