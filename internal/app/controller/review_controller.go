package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

type ReviewController struct {
	reviewService     *service.ReviewService
	moderationService service.ModerationService
}

func NewReviewController(reviewService *service.ReviewService, moderationService service.ModerationService) *ReviewController {
	return &ReviewController{
		reviewService:     reviewService,
		moderationService: moderationService,
	}
}

func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	authorID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var input service.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid review payload")
		return
	}

	review, err := ctrl.reviewService.CreateReview(authorID, input)
	if err != nil {
		apperrors.Respond(c, err, "create review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (ctrl *ReviewController) GetStallReviews(c *gin.Context) {
	stallID, ok := paramID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, total, err := ctrl.reviewService.GetStallReviews(stallID, page, pageSize)
	if err != nil {
		apperrors.Respond(c, err, "list stall reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  reviews,
		"total": total,
		"page":  page,
	})
}

func (ctrl *ReviewController) React(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	reviewID, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.React(reviewID, userID); err != nil {
		apperrors.Respond(c, err, "react to review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review_id": reviewID})
}

func (ctrl *ReviewController) Unreact(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	reviewID, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.Unreact(reviewID, userID); err != nil {
		apperrors.Respond(c, err, "remove reaction")
		return
	}

	c.Status(http.StatusNoContent)
}

type reportReviewInput struct {
	Reason       string `json:"reason" binding:"required"`
	CustomReason string `json:"custom_reason"`
}

// ReportReview files an abuse report against a review.
func (ctrl *ReviewController) ReportReview(c *gin.Context) {
	reporterID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	reviewID, ok := paramID(c)
	if !ok {
		return
	}

	var input reportReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "a report reason is required")
		return
	}

	report, err := ctrl.moderationService.Report(reviewID, reporterID, model.ReportReason(input.Reason), input.CustomReason)
	if err != nil {
		apperrors.Respond(c, err, "report review")
		return
	}

	c.JSON(http.StatusCreated, report)
}

func paramID(c *gin.Context) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return 0, false
	}
	return uint(raw), true
}
