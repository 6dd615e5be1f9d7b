package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Slug        string    `gorm:"column:slug;uniqueIndex"`
	Color       *string   `gorm:"column:color"`
	Icon        *string   `gorm:"column:icon"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (categoryModel) TableName() string { return "categories" }

func toDomainCategory(m categoryModel) *domain.Category {
	var description, color, icon string
	if m.Description != nil {
		description = *m.Description
	}
	if m.Color != nil {
		color = *m.Color
	}
	if m.Icon != nil {
		icon = *m.Icon
	}

	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: description,
		Slug:        m.Slug,
		Color:       color,
		Icon:        icon,
		CreatedAt:   m.CreatedAt,
	}
}

func toCategoryModel(c *domain.Category) categoryModel {
	var description, color, icon *string
	if c.Description != "" {
		v := c.Description
		description = &v
	}
	if c.Color != "" {
		v := c.Color
		color = &v
	}
	if c.Icon != "" {
		v := c.Icon
		icon = &v
	}

	return categoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: description,
		Slug:        c.Slug,
		Color:       color,
		Icon:        icon,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := toCategoryModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCategory(m)
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	tx := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCategory(m), nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var m categoryModel
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCategory(m), nil
}
