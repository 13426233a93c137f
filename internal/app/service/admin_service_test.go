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

func setupAdminServiceTest(t *testing.T) (AdminService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	logRepo := repository.NewAdminLogRepository(testDB)
	auditService := NewAuditService(logRepo)
	adminService := NewAdminService(userRepo, auditService, testDB)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	return adminService, testDB, admin
}

// seedOwnerWithAssets creates a stall owner with the full asset graph the
// conversion cascade has to remove: stall, location, menu items, a review
// from another customer with a reaction and an open report, plus a pending
// application.
func seedOwnerWithAssets(t *testing.T, testDB *gorm.DB) (*model.User, *model.FoodStall, *model.Review) {
	t.Helper()

	owner := &model.User{Email: "owner@example.com", PasswordHash: "hash", Name: "Owner", Role: model.RoleStallOwner}
	require.NoError(t, testDB.Create(owner).Error)
	customer := &model.User{Email: "customer@example.com", PasswordHash: "hash", Name: "Customer", Role: model.RoleCustomer}
	require.NoError(t, testDB.Create(customer).Error)

	stall := &model.FoodStall{OwnerID: owner.ID, Name: "Owner Stall", IsActive: true}
	require.NoError(t, testDB.Create(stall).Error)
	require.NoError(t, testDB.Create(&model.StallLocation{StallID: stall.ID, Address: "Block 51 #01-88"}).Error)
	require.NoError(t, testDB.Create(&model.MenuItem{StallID: stall.ID, Name: "Laksa", Price: 5.50, Available: true}).Error)

	review := &model.Review{StallID: stall.ID, AuthorID: customer.ID, Rating: 4, Comment: "solid laksa"}
	require.NoError(t, testDB.Create(review).Error)
	require.NoError(t, testDB.Create(&model.ReviewReaction{ReviewID: review.ID, UserID: customer.ID}).Error)
	require.NoError(t, testDB.Create(&model.ReviewReport{ReviewID: review.ID, ReporterID: customer.ID, Reason: model.ReasonSpam}).Error)

	require.NoError(t, testDB.Create(&model.Application{
		ApplicantID: owner.ID,
		StallName:   "Second Stall",
		Status:      model.ApplicationPending,
	}).Error)

	return owner, stall, review
}

func TestAdminService_ConvertToAdmin_Success(t *testing.T) {
	adminService, testDB, admin := setupAdminServiceTest(t)
	owner, stall, review := seedOwnerWithAssets(t, testDB)

	converted, removed, err := adminService.ConvertToAdmin(owner.Email, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, model.RoleAdmin, converted.Role)

	var user model.User
	testDB.First(&user, owner.ID)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// The entire stall graph is gone.
	var stallCount, locationCount, itemCount, reviewCount, reactionCount, reportCount int64
	testDB.Model(&model.FoodStall{}).Where("id = ?", stall.ID).Count(&stallCount)
	testDB.Model(&model.StallLocation{}).Where("stall_id = ?", stall.ID).Count(&locationCount)
	testDB.Model(&model.MenuItem{}).Where("stall_id = ?", stall.ID).Count(&itemCount)
	testDB.Model(&model.Review{}).Where("id = ?", review.ID).Count(&reviewCount)
	testDB.Model(&model.ReviewReaction{}).Where("review_id = ?", review.ID).Count(&reactionCount)
	testDB.Model(&model.ReviewReport{}).Where("review_id = ?", review.ID).Count(&reportCount)
	assert.Zero(t, stallCount)
	assert.Zero(t, locationCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, reviewCount)
	assert.Zero(t, reactionCount)
	assert.Zero(t, reportCount)

	// Their pending application went with it.
	var appCount int64
	testDB.Model(&model.Application{}).Where("applicant_id = ?", owner.ID).Count(&appCount)
	assert.Zero(t, appCount)

	var entries []model.AdminLogEntry
	testDB.Where("action = ?", model.ActionConvertToAdmin).Find(&entries)
	require.Len(t, entries, 1)
	assert.Equal(t, admin.ID, entries[0].AdminID)
	assert.Equal(t, owner.ID, entries[0].EntityID)
	assert.Contains(t, entries[0].Details, "removed 1 stall(s)")
}

func TestAdminService_ConvertToAdmin_CustomerWithoutAssets(t *testing.T) {
	adminService, testDB, admin := setupAdminServiceTest(t)

	customer := &model.User{Email: "plain@example.com", PasswordHash: "hash", Name: "Plain", Role: model.RoleCustomer}
	testDB.Create(customer)

	converted, removed, err := adminService.ConvertToAdmin(customer.Email, admin.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, model.RoleAdmin, converted.Role)
}

func TestAdminService_ConvertToAdmin_UnknownEmail(t *testing.T) {
	adminService, _, admin := setupAdminServiceTest(t)

	_, _, err := adminService.ConvertToAdmin("nobody@example.com", admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAdminService_ConvertToAdmin_AlreadyAdmin(t *testing.T) {
	adminService, _, admin := setupAdminServiceTest(t)

	_, _, err := adminService.ConvertToAdmin(admin.Email, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrStateConflict)
}

func TestAdminService_ConvertToAdmin_RollsBackOnFailure(t *testing.T) {
	adminService, testDB, admin := setupAdminServiceTest(t)
	owner, stall, review := seedOwnerWithAssets(t, testDB)

	// Break the cascade mid-flight: dropping the locations table makes the
	// location delete fail after reviews and menu items were already deleted
	// inside the transaction.
	require.NoError(t, testDB.Migrator().DropTable(&model.StallLocation{}))

	_, _, err := adminService.ConvertToAdmin(owner.Email, admin.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransactionFailed)

	// Everything the transaction touched is back.
	var user model.User
	testDB.First(&user, owner.ID)
	assert.Equal(t, model.RoleStallOwner, user.Role)

	var stallCount, reviewCount, appCount, logCount int64
	testDB.Model(&model.FoodStall{}).Where("id = ?", stall.ID).Count(&stallCount)
	testDB.Model(&model.Review{}).Where("id = ?", review.ID).Count(&reviewCount)
	testDB.Model(&model.Application{}).Where("applicant_id = ?", owner.ID).Count(&appCount)
	testDB.Model(&model.AdminLogEntry{}).Count(&logCount)
	assert.Equal(t, int64(1), stallCount)
	assert.Equal(t, int64(1), reviewCount)
	assert.Equal(t, int64(1), appCount)
	assert.Zero(t, logCount)
}
