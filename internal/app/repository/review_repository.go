package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("Author").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByStallID(stallID uint, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	if err := r.db.Model(&model.Review{}).
		Where("stall_id = ?", stallID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").
		Where("stall_id = ?", stallID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) CreateReaction(reaction *model.ReviewReaction) error {
	return r.db.Create(reaction).Error
}

func (r *ReviewRepository) DeleteReaction(reviewID, userID uint) error {
	return r.db.
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&model.ReviewReaction{}).Error
}

func (r *ReviewRepository) CountReactions(reviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ReviewReaction{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

func (r *ReviewRepository) HasReaction(reviewID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewReaction{}).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Count(&count).Error
	return count > 0, err
}
