package catalog

import (
	"context"

	"skillflip/internal/domain"
	"skillflip/internal/repository"
)

type SkillRepository interface {
	Create(ctx context.Context, s *domain.Skill) error
	GetByID(ctx context.Context, id int64) (*domain.Skill, error)
	List(ctx context.Context, f repository.SkillFilter) ([]domain.Skill, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Skill, error)
	Update(ctx context.Context, s *domain.Skill) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}
