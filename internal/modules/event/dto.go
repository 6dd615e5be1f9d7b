package event

import "time"

type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	EventDate    time.Time `json:"event_date" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	Price        float64   `json:"price"`
	MaxAttendees int       `json:"max_attendees" binding:"required"`
	ImageURL     string    `json:"image_url"`
}
