package domain

import "time"

type Event struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventDate        time.Time `json:"event_date"`
	Location         string    `json:"location"`
	Price            float64   `json:"price"`
	MaxAttendees     int       `json:"max_attendees"`
	CurrentAttendees int       `json:"current_attendees"`
	ImageURL         string    `json:"image_url,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type EventRegistration struct {
	ID               int64         `json:"id"`
	EventID          int64         `json:"event_id"`
	UserID           string        `json:"user_id"`
	RegistrationDate time.Time     `json:"registration_date"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
}
