package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) DB() *gorm.DB { return r.db }

type skillModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Title            string    `gorm:"column:title"`
	Description      string    `gorm:"column:description;type:text"`
	ShortDescription *string   `gorm:"column:short_description"`
	CreatorID        string    `gorm:"column:creator_id;index"`
	CategoryID       int64     `gorm:"column:category_id;index"`
	Price            float64   `gorm:"column:price"`
	Duration         int       `gorm:"column:duration"`
	SessionType      string    `gorm:"column:session_type"`
	Location         *string   `gorm:"column:location"`
	Tags             []byte    `gorm:"column:tags"`
	BarterAccepted   bool      `gorm:"column:barter_accepted"`
	IsActive         bool      `gorm:"column:is_active"`
	IsApproved       bool      `gorm:"column:is_approved"`
	IsFeatured       bool      `gorm:"column:is_featured"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (skillModel) TableName() string { return "skills" }

func toDomainSkill(m skillModel) *domain.Skill {
	var short, location string
	if m.ShortDescription != nil {
		short = *m.ShortDescription
	}
	if m.Location != nil {
		location = *m.Location
	}

	var tags []string
	if len(m.Tags) > 0 {
		_ = json.Unmarshal(m.Tags, &tags)
	}

	return &domain.Skill{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		ShortDescription: short,
		CreatorID:        m.CreatorID,
		CategoryID:       m.CategoryID,
		Price:            m.Price,
		Duration:         m.Duration,
		SessionType:      domain.SessionType(m.SessionType),
		Location:         location,
		Tags:             tags,
		BarterAccepted:   m.BarterAccepted,
		IsActive:         m.IsActive,
		IsApproved:       m.IsApproved,
		IsFeatured:       m.IsFeatured,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toSkillModel(s *domain.Skill) skillModel {
	var short, location *string
	if s.ShortDescription != "" {
		v := s.ShortDescription
		short = &v
	}
	if s.Location != "" {
		v := s.Location
		location = &v
	}

	var tags []byte
	if len(s.Tags) > 0 {
		tags, _ = json.Marshal(s.Tags)
	}

	return skillModel{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		ShortDescription: short,
		CreatorID:        s.CreatorID,
		CategoryID:       s.CategoryID,
		Price:            s.Price,
		Duration:         s.Duration,
		SessionType:      string(s.SessionType),
		Location:         location,
		Tags:             tags,
		BarterAccepted:   s.BarterAccepted,
		IsActive:         s.IsActive,
		IsApproved:       s.IsApproved,
		IsFeatured:       s.IsFeatured,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// SkillFilter narrows public skill listings. Zero values mean "no filter".
type SkillFilter struct {
	CategoryID   int64
	Search       string
	SessionType  string
	MaxPrice     float64
	FeaturedOnly bool
	Limit        int
	Offset       int
}

func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) error {
	m := toSkillModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSkill(m)
	return nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var m skillModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSkill(m), nil
}

// List returns approved, active skills matching the filter, for public
// browsing. Unapproved and deactivated skills never leak out of here.
func (r *SkillRepository) List(ctx context.Context, f SkillFilter) ([]domain.Skill, error) {
	q := r.db.WithContext(ctx).Model(&skillModel{}).
		Where("is_approved = ? AND is_active = ?", true, true)

	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if f.SessionType != "" {
		q = q.Where("session_type = ? OR session_type = ?", f.SessionType, string(domain.SessionBoth))
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []skillModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainSkills(models), nil
}

func (r *SkillRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Skill, error) {
	var models []skillModel
	tx := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSkills(models), nil
}

func (r *SkillRepository) ListPending(ctx context.Context) ([]domain.Skill, error) {
	var models []skillModel
	tx := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSkills(models), nil
}

func (r *SkillRepository) Update(ctx context.Context, s *domain.Skill) error {
	m := toSkillModel(s)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *SkillRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	return r.setFlag(ctx, id, "is_approved", approved)
}

func (r *SkillRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	return r.setFlag(ctx, id, "is_featured", featured)
}

func (r *SkillRepository) setFlag(ctx context.Context, id int64, column string, v bool) error {
	tx := r.db.WithContext(ctx).Model(&skillModel{}).Where("id = ?", id).Updates(map[string]any{
		column:       v,
		"updated_at": time.Now().UTC(),
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toDomainSkills(models []skillModel) []domain.Skill {
	out := make([]domain.Skill, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSkill(m))
	}
	return out
}
