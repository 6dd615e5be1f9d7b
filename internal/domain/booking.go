package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingRefunded   BookingStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Blocks reports whether this booking still occupies its slot. Cancelled and
// refunded bookings free the slot for rebooking.
func (s BookingStatus) Blocks() bool {
	return s != BookingCancelled && s != BookingRefunded
}

type Booking struct {
	ID              int64         `json:"id"`
	LearnerID       string        `json:"learner_id"`
	CreatorID       string        `json:"creator_id"`
	SkillID         int64         `json:"skill_id"`
	SessionDate     time.Time     `json:"session_date"`
	Duration        int           `json:"duration"` // minutes
	SessionType     SessionType   `json:"session_type"`
	Location        string        `json:"location,omitempty"`
	TotalAmount     float64       `json:"total_amount"`
	PlatformFee     float64       `json:"platform_fee"`
	CreatorEarnings float64       `json:"creator_earnings"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`

	Learner *User  `json:"learner,omitempty"`
	Skill   *Skill `json:"skill,omitempty"`
}

// SessionEnd is the exclusive end of the booked interval.
func (b *Booking) SessionEnd() time.Time {
	return b.SessionDate.Add(time.Duration(b.Duration) * time.Minute)
}
