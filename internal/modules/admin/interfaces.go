package admin

import (
	"context"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

// SkillRepository covers the moderation operations plus raw DB access for
// aggregate queries.
type SkillRepository interface {
	DB() *gorm.DB
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
	ListPending(ctx context.Context) ([]domain.Skill, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
}

type BookingRepository interface {
	DB() *gorm.DB
}

type UserRepository interface {
	DB() *gorm.DB
}

type ReviewRepository interface {
	DB() *gorm.DB
}
