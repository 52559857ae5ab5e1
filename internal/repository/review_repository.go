package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"graidea-reviews/internal/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// FindAll returns every review in insertion order.
func (r *ReviewRepository) FindAll(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	return reviews, nil
}

// FindByTeacherID returns all reviews matching the teacher id exactly.
func (r *ReviewRepository) FindByTeacherID(ctx context.Context, teacherID int) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews by teacher failed: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count reviews failed: %w", err)
	}
	return count, nil
}

func (r *ReviewRepository) CreateBatch(ctx context.Context, reviews []model.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&reviews).Error; err != nil {
		return fmt.Errorf("create reviews batch failed: %w", err)
	}
	return nil
}
