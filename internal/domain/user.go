package domain

import "time"

type Role string

const (
	RoleLearner Role = "learner"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// User identities are issued by the external auth provider, so the ID is an
// opaque string rather than a database serial.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Role            Role      `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
