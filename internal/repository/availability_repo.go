package repository

import (
	"context"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityWindowModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	CreatorID   string `gorm:"column:creator_id;index"`
	DayOfWeek   int    `gorm:"column:day_of_week"`
	StartTime   string `gorm:"column:start_time"`
	EndTime     string `gorm:"column:end_time"`
	IsAvailable bool   `gorm:"column:is_available"`
}

func (availabilityWindowModel) TableName() string { return "creator_availability" }

func toDomainWindow(m availabilityWindowModel) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:          m.ID,
		CreatorID:   m.CreatorID,
		DayOfWeek:   m.DayOfWeek,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		IsAvailable: m.IsAvailable,
	}
}

func toWindowModel(w domain.AvailabilityWindow) availabilityWindowModel {
	return availabilityWindowModel{
		ID:          w.ID,
		CreatorID:   w.CreatorID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}

func (r *AvailabilityRepository) ListForCreator(ctx context.Context, creatorID string) ([]domain.AvailabilityWindow, error) {
	var models []availabilityWindowModel
	tx := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.AvailabilityWindow, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainWindow(m))
	}
	return out, nil
}

// ReplaceForCreator swaps the creator's whole schedule in one transaction so
// a concurrent slot lookup never sees a half-written week.
func (r *AvailabilityRepository) ReplaceForCreator(ctx context.Context, creatorID string, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	models := make([]availabilityWindowModel, 0, len(windows))
	for _, w := range windows {
		m := toWindowModel(w)
		m.ID = 0
		m.CreatorID = creatorID
		models = append(models, m)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", creatorID).Delete(&availabilityWindowModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AvailabilityWindow, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainWindow(m))
	}
	return out, nil
}
