package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	LearnerID string    `json:"learner_id"`
	CreatorID string    `json:"creator_id"`
	SkillID   int64     `json:"skill_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`

	Learner *User `json:"learner,omitempty"`
}
