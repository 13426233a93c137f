package service

import (
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

type CreateReviewInput struct {
	StallID   uint   `json:"stall_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title"`
	Comment   string `json:"comment" binding:"required,min=10"`
	Anonymous bool   `json:"anonymous"`
}

type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	stallRepo  repository.StallRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, stallRepo repository.StallRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		stallRepo:  stallRepo,
	}
}

func (s *ReviewService) CreateReview(authorID uint, input CreateReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.Validationf("rating must be between 1 and 5")
	}

	stall, err := s.stallRepo.FindByID(input.StallID)
	if err != nil {
		return nil, err
	}
	if stall == nil || !stall.IsActive {
		return nil, apperrors.NotFoundf("stall %d not found", input.StallID)
	}

	review := &model.Review{
		StallID:   input.StallID,
		AuthorID:  authorID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		Anonymous: input.Anonymous,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"stall_id":  input.StallID,
		"author_id": authorID,
	})

	return s.reviewRepo.FindByID(review.ID)
}

func (s *ReviewService) GetReview(id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFoundf("review %d not found", id)
	}
	return review, nil
}

func (s *ReviewService) GetStallReviews(stallID uint, page, pageSize int) ([]model.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.reviewRepo.FindByStallID(stallID, offset, pageSize)
}

// React marks a review as helpful; one reaction per user per review.
func (s *ReviewService) React(reviewID, userID uint) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperrors.NotFoundf("review %d not found", reviewID)
	}

	already, err := s.reviewRepo.HasReaction(reviewID, userID)
	if err != nil {
		return err
	}
	if already {
		return apperrors.Duplicatef("review %d already marked helpful", reviewID)
	}

	return s.reviewRepo.CreateReaction(&model.ReviewReaction{
		ReviewID: reviewID,
		UserID:   userID,
	})
}

func (s *ReviewService) Unreact(reviewID, userID uint) error {
	return s.reviewRepo.DeleteReaction(reviewID, userID)
}
