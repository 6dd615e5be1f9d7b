package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"skillflip/internal/domain"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/repository"
)

type Service struct {
	skills     SkillRepository
	categories CategoryRepository
}

func NewService(skills SkillRepository, categories CategoryRepository) *Service {
	return &Service{skills: skills, categories: categories}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrValidation)
	}

	if _, err := s.categories.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListSkills(ctx context.Context, f repository.SkillFilter) ([]domain.Skill, error) {
	return s.skills.List(ctx, f)
}

// GetSkill enforces the public visibility gate: anyone can fetch a bookable
// skill, but unapproved or deactivated ones are visible only to their owner
// and admins.
func (s *Service) GetSkill(ctx context.Context, actorID string, actorRole domain.Role, id int64) (*domain.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !skill.Bookable() && skill.CreatorID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrNotFound
	}
	return skill, nil
}

// ListCreatorSkills shows the full list to the owner and admins, and only
// bookable skills to everyone else.
func (s *Service) ListCreatorSkills(ctx context.Context, actorID string, actorRole domain.Role, creatorID string) ([]domain.Skill, error) {
	skills, err := s.skills.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if actorID == creatorID || actorRole == domain.RoleAdmin {
		return skills, nil
	}

	visible := make([]domain.Skill, 0, len(skills))
	for _, sk := range skills {
		if sk.Bookable() {
			visible = append(visible, sk)
		}
	}
	return visible, nil
}

// CreateSkill lists a new skill. It starts unapproved; an admin has to sign
// off before it becomes bookable.
func (s *Service) CreateSkill(ctx context.Context, creatorID string, req CreateSkillRequest) (*domain.Skill, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if !pricing.DurationSupported(req.Duration) {
		return nil, fmt.Errorf("%w: duration must be one of 30, 60, 90, 120", ErrValidation)
	}
	sessionType, ok := parseOfferedSessionType(req.SessionType)
	if !ok {
		return nil, fmt.Errorf("%w: session_type must be virtual, in-person or both", ErrValidation)
	}

	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	skill := &domain.Skill{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CreatorID:        creatorID,
		CategoryID:       req.CategoryID,
		Price:            req.Price,
		Duration:         req.Duration,
		SessionType:      sessionType,
		Location:         req.Location,
		Tags:             req.Tags,
		BarterAccepted:   req.BarterAccepted,
		IsActive:         true,
		IsApproved:       false,
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Service) UpdateSkill(ctx context.Context, actorID string, actorRole domain.Role, id int64, req UpdateSkillRequest) (*domain.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if skill.CreatorID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		skill.Price = *req.Price
	}
	if req.Duration != nil {
		if !pricing.DurationSupported(*req.Duration) {
			return nil, fmt.Errorf("%w: duration must be one of 30, 60, 90, 120", ErrValidation)
		}
		skill.Duration = *req.Duration
	}
	if req.SessionType != nil {
		sessionType, ok := parseOfferedSessionType(*req.SessionType)
		if !ok {
			return nil, fmt.Errorf("%w: session_type must be virtual, in-person or both", ErrValidation)
		}
		skill.SessionType = sessionType
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		skill.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		skill.Title = *req.Title
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.ShortDescription != nil {
		skill.ShortDescription = *req.ShortDescription
	}
	if req.Location != nil {
		skill.Location = *req.Location
	}
	if req.Tags != nil {
		skill.Tags = *req.Tags
	}
	if req.BarterAccepted != nil {
		skill.BarterAccepted = *req.BarterAccepted
	}
	if req.IsActive != nil {
		skill.IsActive = *req.IsActive
	}

	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// parseOfferedSessionType accepts "both" too, unlike booking requests.
func parseOfferedSessionType(v string) (domain.SessionType, bool) {
	switch domain.SessionType(v) {
	case domain.SessionVirtual, domain.SessionInPerson, domain.SessionBoth:
		return domain.SessionType(v), true
	default:
		return "", false
	}
}
