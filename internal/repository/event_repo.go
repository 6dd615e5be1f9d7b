package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

// ErrEventFull is returned when a registration loses the race for the last
// seat.
var ErrEventFull = errors.New("event is at capacity")

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description;type:text"`
	EventDate        time.Time `gorm:"column:event_date"`
	Location         string    `gorm:"column:location"`
	Price            float64   `gorm:"column:price"`
	MaxAttendees     int       `gorm:"column:max_attendees"`
	CurrentAttendees int       `gorm:"column:current_attendees"`
	ImageURL         *string   `gorm:"column:image_url"`
	IsActive         bool      `gorm:"column:is_active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (eventModel) TableName() string { return "events" }

type eventRegistrationModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	EventID          int64     `gorm:"column:event_id;uniqueIndex:uq_event_registrations_event_user"`
	UserID           string    `gorm:"column:user_id;uniqueIndex:uq_event_registrations_event_user"`
	RegistrationDate time.Time `gorm:"column:registration_date"`
	PaymentStatus    string    `gorm:"column:payment_status"`
}

func (eventRegistrationModel) TableName() string { return "event_registrations" }

func toDomainEvent(m eventModel) *domain.Event {
	var image string
	if m.ImageURL != nil {
		image = *m.ImageURL
	}

	return &domain.Event{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		EventDate:        m.EventDate,
		Location:         m.Location,
		Price:            m.Price,
		MaxAttendees:     m.MaxAttendees,
		CurrentAttendees: m.CurrentAttendees,
		ImageURL:         image,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
	}
}

func toEventModel(e *domain.Event) eventModel {
	var image *string
	if e.ImageURL != "" {
		v := e.ImageURL
		image = &v
	}

	return eventModel{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		EventDate:        e.EventDate,
		Location:         e.Location,
		Price:            e.Price,
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: e.CurrentAttendees,
		ImageURL:         image,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	m := toEventModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEvent(m)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var m eventModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEvent(m), nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error) {
	var models []eventModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ? AND event_date >= ?", true, after).
		Order("event_date ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Event, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainEvent(m))
	}
	return out, nil
}

// Register claims a seat and records the registration atomically. The guarded
// UPDATE keeps current_attendees under max_attendees even under concurrent
// registrations; the unique index on (event_id, user_id) rejects repeats.
func (r *EventRepository) Register(ctx context.Context, reg *domain.EventRegistration) error {
	m := eventRegistrationModel{
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		RegistrationDate: reg.RegistrationDate,
		PaymentStatus:    string(reg.PaymentStatus),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
UPDATE events
SET current_attendees = current_attendees + 1
WHERE id = ? AND current_attendees < max_attendees
`, reg.EventID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventFull
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	reg.ID = m.ID
	return nil
}

func (r *EventRepository) IsRegistered(ctx context.Context, eventID int64, userID string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&eventRegistrationModel{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
