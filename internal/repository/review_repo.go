package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"skillflip/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) DB() *gorm.DB { return r.db }

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;uniqueIndex"`
	LearnerID string    `gorm:"column:learner_id"`
	CreatorID string    `gorm:"column:creator_id;index"`
	SkillID   int64     `gorm:"column:skill_id;index"`
	Rating    int       `gorm:"column:rating"`
	Comment   *string   `gorm:"column:comment"`
	IsPublic  bool      `gorm:"column:is_public"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}

	return &domain.Review{
		ID:        m.ID,
		BookingID: m.BookingID,
		LearnerID: m.LearnerID,
		CreatorID: m.CreatorID,
		SkillID:   m.SkillID,
		Rating:    m.Rating,
		Comment:   comment,
		IsPublic:  m.IsPublic,
		CreatedAt: m.CreatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	var comment *string
	if rv.Comment != "" {
		v := rv.Comment
		comment = &v
	}

	return reviewModel{
		ID:        rv.ID,
		BookingID: rv.BookingID,
		LearnerID: rv.LearnerID,
		CreatorID: rv.CreatorID,
		SkillID:   rv.SkillID,
		Rating:    rv.Rating,
		Comment:   comment,
		IsPublic:  rv.IsPublic,
		CreatedAt: rv.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) ListBySkill(ctx context.Context, skillID int64) ([]domain.Review, error) {
	return r.list(ctx, "skill_id = ? AND is_public = ?", skillID)
}

func (r *ReviewRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Review, error) {
	return r.list(ctx, "creator_id = ? AND is_public = ?", creatorID)
}

func (r *ReviewRepository) list(ctx context.Context, cond string, arg any) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).Where(cond, arg, true).Order("created_at DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

// AverageRatingForCreator aggregates public review scores. Returns 0 with
// count 0 when the creator has no reviews yet.
func (r *ReviewRepository) AverageRatingForCreator(ctx context.Context, creatorID string) (avg float64, count int64, err error) {
	row := struct {
		Avg   float64
		Count int64
	}{}
	tx := r.db.WithContext(ctx).
		Table("reviews").
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(1) AS count").
		Where("creator_id = ? AND is_public = ?", creatorID, true).
		Scan(&row)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	return row.Avg, row.Count, nil
}
