package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB, *model.User, *model.FoodStall) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	stallRepo := repository.NewStallRepository(testDB)
	reviewService := NewReviewService(reviewRepo, stallRepo)

	customer := &model.User{Email: "customer@example.com", PasswordHash: "hash", Name: "Customer", Role: model.RoleCustomer}
	testDB.Create(customer)
	owner := &model.User{Email: "owner@example.com", PasswordHash: "hash", Name: "Owner", Role: model.RoleStallOwner}
	testDB.Create(owner)

	stall := &model.FoodStall{OwnerID: owner.ID, Name: "Review Target", IsActive: true}
	testDB.Create(stall)

	return reviewService, testDB, customer, stall
}

func TestReviewService_CreateReview_Success(t *testing.T) {
	reviewService, _, customer, stall := setupReviewServiceTest(t)

	review, err := reviewService.CreateReview(customer.ID, CreateReviewInput{
		StallID: stall.ID,
		Rating:  5,
		Title:   "Great",
		Comment: "Honestly excellent hokkien mee",
	})
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, customer.ID, review.AuthorID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	reviewService, _, customer, stall := setupReviewServiceTest(t)

	_, err := reviewService.CreateReview(customer.ID, CreateReviewInput{
		StallID: stall.ID,
		Rating:  6,
		Comment: "rating out of range here",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReviewService_CreateReview_InactiveStall(t *testing.T) {
	reviewService, testDB, customer, stall := setupReviewServiceTest(t)

	testDB.Model(&model.FoodStall{}).Where("id = ?", stall.ID).Update("is_active", false)

	_, err := reviewService.CreateReview(customer.ID, CreateReviewInput{
		StallID: stall.ID,
		Rating:  3,
		Comment: "stall is closed down now",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewService_GetStallReviews_Paginated(t *testing.T) {
	reviewService, testDB, customer, stall := setupReviewServiceTest(t)

	for i := 0; i < 25; i++ {
		testDB.Create(&model.Review{
			StallID:  stall.ID,
			AuthorID: customer.ID,
			Rating:   (i % 5) + 1,
			Comment:  "batch review",
		})
	}

	reviews, total, err := reviewService.GetStallReviews(stall.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, reviews, 20)

	reviews, _, err = reviewService.GetStallReviews(stall.ID, 2, 20)
	require.NoError(t, err)
	assert.Len(t, reviews, 5)
}

func TestReviewService_React_OncePerUser(t *testing.T) {
	reviewService, testDB, customer, stall := setupReviewServiceTest(t)

	review := &model.Review{StallID: stall.ID, AuthorID: customer.ID, Rating: 4, Comment: "nice"}
	testDB.Create(review)

	other := &model.User{Email: "other@example.com", PasswordHash: "hash", Name: "Other", Role: model.RoleCustomer}
	testDB.Create(other)

	require.NoError(t, reviewService.React(review.ID, other.ID))

	err := reviewService.React(review.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	require.NoError(t, reviewService.Unreact(review.ID, other.ID))
	assert.NoError(t, reviewService.React(review.ID, other.ID))
}

func TestReviewService_React_ReviewNotFound(t *testing.T) {
	reviewService, _, customer, _ := setupReviewServiceTest(t)

	err := reviewService.React(9999, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
