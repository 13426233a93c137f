package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
)

func setupApplicationRepositoryTest(t *testing.T) (ApplicationRepository, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	applicant := &model.User{
		Email:        "vendor@example.com",
		PasswordHash: "hash",
		Name:         "Vendor",
		Role:         model.RoleCustomer,
	}
	testDB.Create(applicant)

	return NewApplicationRepository(testDB), testDB, applicant
}

func TestApplicationRepository_FindPending_FIFO(t *testing.T) {
	repo, testDB, applicant := setupApplicationRepositoryTest(t)

	newest := &model.Application{ApplicantID: applicant.ID, StallName: "Newest", Status: model.ApplicationPending}
	require.NoError(t, repo.Create(newest))
	oldest := &model.Application{ApplicantID: applicant.ID, StallName: "Oldest", Status: model.ApplicationPending}
	require.NoError(t, repo.Create(oldest))
	resolved := &model.Application{ApplicantID: applicant.ID, StallName: "Resolved", Status: model.ApplicationApproved}
	require.NoError(t, repo.Create(resolved))

	testDB.Model(&model.Application{}).Where("id = ?", oldest.ID).
		Update("created_at", time.Now().Add(-2*time.Hour))

	pending, err := repo.FindPending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "Oldest", pending[0].StallName)
	assert.Equal(t, "Newest", pending[1].StallName)
	assert.Equal(t, applicant.Email, pending[0].Applicant.Email)
}

func TestApplicationRepository_FindPendingOlderThan(t *testing.T) {
	repo, testDB, applicant := setupApplicationRepositoryTest(t)

	stale := &model.Application{ApplicantID: applicant.ID, StallName: "Stale", Status: model.ApplicationPending}
	require.NoError(t, repo.Create(stale))
	fresh := &model.Application{ApplicantID: applicant.ID, StallName: "Fresh", Status: model.ApplicationPending}
	require.NoError(t, repo.Create(fresh))

	testDB.Model(&model.Application{}).Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-48*time.Hour))

	old, err := repo.FindPendingOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, stale.ID, old[0].ID)
}

func TestApplicationRepository_HasPendingByApplicant(t *testing.T) {
	repo, testDB, applicant := setupApplicationRepositoryTest(t)

	has, err := repo.HasPendingByApplicant(applicant.ID)
	require.NoError(t, err)
	assert.False(t, has)

	app := &model.Application{ApplicantID: applicant.ID, StallName: "Stall", Status: model.ApplicationPending}
	require.NoError(t, repo.Create(app))

	has, err = repo.HasPendingByApplicant(applicant.ID)
	require.NoError(t, err)
	assert.True(t, has)

	// A resolved application no longer counts.
	testDB.Model(&model.Application{}).Where("id = ?", app.ID).
		Update("status", model.ApplicationDeclined)

	has, err = repo.HasPendingByApplicant(applicant.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestApplicationRepository_CountPending(t *testing.T) {
	repo, _, applicant := setupApplicationRepositoryTest(t)

	for i := 0; i < 3; i++ {
		status := model.ApplicationPending
		if i == 2 {
			status = model.ApplicationArchived
		}
		require.NoError(t, repo.Create(&model.Application{
			ApplicantID: applicant.ID,
			StallName:   "Stall",
			Status:      status,
		}))
	}

	count, err := repo.CountPending()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestApplicationRepository_FindByID_Missing(t *testing.T) {
	repo, _, _ := setupApplicationRepositoryTest(t)

	app, err := repo.FindByID(9999)
	require.NoError(t, err)
	assert.Nil(t, app)
}
