package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
	"github.com/hawkerhub/hawkerhub-backend/pkg/util"
)

const testSecret = "test-secret"

type adminControllerFixture struct {
	router     *gin.Engine
	db         *gorm.DB
	admin      *model.User
	applicant  *model.User
	appService service.ApplicationService
}

func setupAdminControllerTest(t *testing.T) *adminControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	appRepo := repository.NewApplicationRepository(testDB)
	stallRepo := repository.NewStallRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	reportRepo := repository.NewReportRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	logRepo := repository.NewAdminLogRepository(testDB)

	auditService := service.NewAuditService(logRepo)
	appService := service.NewApplicationService(appRepo, stallRepo, auditService, nil, testDB)
	moderationService := service.NewModerationService(reportRepo, reviewRepo, auditService, nil, testDB)
	adminService := service.NewAdminService(userRepo, auditService, testDB)

	ctrl := NewAdminController(appService, moderationService, adminService, auditService)
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(authMiddleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/applications", ctrl.ListPendingApplications)
		admin.POST("/applications/:id/approve", ctrl.ApproveApplication)
		admin.POST("/applications/:id/decline", ctrl.DeclineApplication)
		admin.POST("/moderation/reviews/:id/dismiss", ctrl.DismissReports)
		admin.POST("/users/convert-to-admin", ctrl.ConvertToAdmin)
		admin.GET("/logs", ctrl.ListAuditLog)
		admin.GET("/logs/export", ctrl.ExportAuditLog)
	}

	adminUser := &model.User{Email: "admin@example.com", PasswordHash: "hash", Name: "Admin", Role: model.RoleAdmin}
	testDB.Create(adminUser)
	applicant := &model.User{Email: "vendor@example.com", PasswordHash: "hash", Name: "Vendor", Role: model.RoleCustomer}
	testDB.Create(applicant)

	return &adminControllerFixture{
		router:     router,
		db:         testDB,
		admin:      adminUser,
		applicant:  applicant,
		appService: appService,
	}
}

func (f *adminControllerFixture) tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), testSecret, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (f *adminControllerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAdminController_RequiresAdminRole(t *testing.T) {
	f := setupAdminControllerTest(t)

	w := f.do(t, "GET", "/admin/applications", f.tokenFor(t, f.applicant), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, "GET", "/admin/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminController_ApproveApplication(t *testing.T) {
	f := setupAdminControllerTest(t)

	app, err := f.appService.Submit(f.applicant.ID, service.SubmitApplicationInput{
		StallName: "Nasi Lemak Corner",
		Location:  "Changi Village #01-26",
	})
	require.NoError(t, err)

	w := f.do(t, "POST", fmt.Sprintf("/admin/applications/%d/approve", app.ID),
		f.tokenFor(t, f.admin), map[string]string{"notes": "all documents in order"})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response["stall_id"])

	// Replaying the decision conflicts.
	w = f.do(t, "POST", fmt.Sprintf("/admin/applications/%d/approve", app.ID),
		f.tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminController_DeclineApplication_EmptyBody(t *testing.T) {
	f := setupAdminControllerTest(t)

	app, err := f.appService.Submit(f.applicant.ID, service.SubmitApplicationInput{
		StallName: "Nasi Lemak Corner",
		Location:  "Changi Village #01-26",
	})
	require.NoError(t, err)

	// Notes are optional; an empty body must be accepted.
	w := f.do(t, "POST", fmt.Sprintf("/admin/applications/%d/decline", app.ID),
		f.tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored model.Application
	f.db.First(&stored, app.ID)
	assert.Equal(t, model.ApplicationDeclined, stored.Status)
}

func TestAdminController_ApproveApplication_InvalidID(t *testing.T) {
	f := setupAdminControllerTest(t)

	w := f.do(t, "POST", "/admin/applications/abc/approve", f.tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "POST", "/admin/applications/9999/approve", f.tokenFor(t, f.admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminController_DismissReports_NoOpenCase(t *testing.T) {
	f := setupAdminControllerTest(t)

	stall := &model.FoodStall{OwnerID: f.applicant.ID, Name: "Stall", IsActive: true}
	f.db.Create(stall)
	review := &model.Review{StallID: stall.ID, AuthorID: f.applicant.ID, Rating: 3, Comment: "meh"}
	f.db.Create(review)

	w := f.do(t, "POST", fmt.Sprintf("/admin/moderation/reviews/%d/dismiss", review.ID),
		f.tokenFor(t, f.admin), map[string]string{"reason": "nothing to see"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminController_ConvertToAdmin(t *testing.T) {
	f := setupAdminControllerTest(t)

	w := f.do(t, "POST", "/admin/users/convert-to-admin",
		f.tokenFor(t, f.admin), map[string]string{"email": f.applicant.Email})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["stalls_removed"])

	// Bad payloads never reach the service.
	w = f.do(t, "POST", "/admin/users/convert-to-admin",
		f.tokenFor(t, f.admin), map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminController_ListAuditLog(t *testing.T) {
	f := setupAdminControllerTest(t)

	app, err := f.appService.Submit(f.applicant.ID, service.SubmitApplicationInput{
		StallName: "Logged Stall",
		Location:  "Somewhere",
	})
	require.NoError(t, err)
	require.NoError(t, f.appService.Archive(f.admin.ID, app.ID))

	w := f.do(t, "GET", "/admin/logs?limit=10", f.tokenFor(t, f.admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data  []model.AdminLogEntry `json:"data"`
		Total int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Total)
	require.Len(t, response.Data, 1)
	assert.Equal(t, model.ActionArchiveApplication, response.Data[0].Action)
}

func TestAdminController_ExportAuditLog(t *testing.T) {
	f := setupAdminControllerTest(t)

	w := f.do(t, "GET", "/admin/logs/export", f.tokenFor(t, f.admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
}
