package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/internal/db"
)

func setupAuditServiceTest(t *testing.T) (AuditService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	logRepo := repository.NewAdminLogRepository(testDB)
	auditService := NewAuditService(logRepo)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	return auditService, testDB, admin
}

func TestAuditService_Append_OutsideTransaction(t *testing.T) {
	auditService, testDB, admin := setupAuditServiceTest(t)

	err := auditService.Append(nil, admin.ID, model.ActionDismissReports, "review", 7, "dismissed 2 report(s): fine")
	require.NoError(t, err)

	var entry model.AdminLogEntry
	require.NoError(t, testDB.First(&entry).Error)
	assert.Equal(t, admin.ID, entry.AdminID)
	assert.Equal(t, model.ActionDismissReports, entry.Action)
	assert.Equal(t, uint(7), entry.EntityID)
}

func TestAuditService_Append_RollsBackWithTransaction(t *testing.T) {
	auditService, testDB, admin := setupAuditServiceTest(t)

	tx := testDB.Begin()
	require.NoError(t, auditService.Append(tx, admin.ID, model.ActionDeleteReview, "review", 1, "gone"))
	tx.Rollback()

	var count int64
	testDB.Model(&model.AdminLogEntry{}).Count(&count)
	assert.Zero(t, count)
}

func TestAuditService_List_NewestFirst(t *testing.T) {
	auditService, _, admin := setupAuditServiceTest(t)

	actions := []model.AdminAction{
		model.ActionApproveApplication,
		model.ActionDeclineApplication,
		model.ActionDeleteReview,
	}
	for i, action := range actions {
		require.NoError(t, auditService.Append(nil, admin.ID, action, "application", uint(i+1), ""))
	}

	entries, total, err := auditService.List(50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, model.ActionDeleteReview, entries[0].Action)
	assert.Equal(t, model.ActionApproveApplication, entries[2].Action)
}

func TestAuditService_List_ClampsLimit(t *testing.T) {
	auditService, _, admin := setupAuditServiceTest(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, auditService.Append(nil, admin.ID, model.ActionArchiveApplication, "application", uint(i+1), ""))
	}

	entries, total, err := auditService.List(-5, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 3)

	entries, _, err = auditService.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAuditService_ExportXLSX(t *testing.T) {
	auditService, _, admin := setupAuditServiceTest(t)

	require.NoError(t, auditService.Append(nil, admin.ID, model.ActionConvertToAdmin, "user", 42, "converted someone"))

	var buf bytes.Buffer
	require.NoError(t, auditService.ExportXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Audit Log")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Action", rows[0][3])
	assert.Equal(t, string(model.ActionConvertToAdmin), rows[1][3])
	assert.Equal(t, "converted someone", rows[1][6])
}
