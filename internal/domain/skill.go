package domain

import "time"

type SessionType string

const (
	SessionVirtual  SessionType = "virtual"
	SessionInPerson SessionType = "in-person"
	SessionBoth     SessionType = "both"
)

// ParseSessionType accepts the two bookable session types. "both" is a skill
// capability, never a booking request value.
func ParseSessionType(s string) (SessionType, bool) {
	switch SessionType(s) {
	case SessionVirtual, SessionInPerson:
		return SessionType(s), true
	default:
		return "", false
	}
}

// Supports reports whether a skill offering this capability can host the
// requested session type.
func (st SessionType) Supports(requested SessionType) bool {
	return st == SessionBoth || st == requested
}

type Skill struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description,omitempty"`
	CreatorID        string      `json:"creator_id"`
	CategoryID       int64       `json:"category_id"`
	Price            float64     `json:"price"`    // hourly rate
	Duration         int         `json:"duration"` // default session length, minutes
	SessionType      SessionType `json:"session_type"`
	Location         string      `json:"location,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	BarterAccepted   bool        `json:"barter_accepted"`
	IsActive         bool        `json:"is_active"`
	IsApproved       bool        `json:"is_approved"`
	IsFeatured       bool        `json:"is_featured"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Creator  *User     `json:"creator,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Bookable is the visibility gate: only approved, active skills accept
// bookings or show up in public listings.
func (s *Skill) Bookable() bool {
	return s.IsApproved && s.IsActive
}
