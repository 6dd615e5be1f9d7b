package booking

import "time"

type CreateBookingRequest struct {
	SkillID     int64     `json:"skill_id" binding:"required"`
	SessionDate time.Time `json:"session_date" binding:"required"`
	Duration    int       `json:"duration"`
	SessionType string    `json:"session_type" binding:"required"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
