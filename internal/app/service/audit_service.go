package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// AuditService is the append-only accountability sink. Every successful
// governance mutation writes exactly one entry through Append; nothing ever
// updates or deletes one.
type AuditService interface {
	// Append inserts one audit entry. When tx is an open transaction the
	// entry commits or rolls back together with the governance action.
	Append(tx *gorm.DB, adminID uint, action model.AdminAction, entityType string, entityID uint, details string) error
	List(limit, offset int) ([]model.AdminLogEntry, int64, error)
	// ExportXLSX writes the full audit trail as an Excel workbook.
	ExportXLSX(w io.Writer) error
}

type auditService struct {
	logRepo repository.AdminLogRepository
}

func NewAuditService(logRepo repository.AdminLogRepository) AuditService {
	return &auditService{logRepo: logRepo}
}

func (s *auditService) Append(tx *gorm.DB, adminID uint, action model.AdminAction, entityType string, entityID uint, details string) error {
	entry := &model.AdminLogEntry{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}

	if err := s.logRepo.Create(tx, entry); err != nil {
		logger.Error("Failed to append audit entry", err, map[string]interface{}{
			"admin_id":    adminID,
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
		})
		return err
	}

	logger.Info("Audit entry appended", map[string]interface{}{
		"admin_id":    adminID,
		"action":      action,
		"entity_type": entityType,
		"entity_id":   entityID,
	})
	return nil
}

func (s *auditService) List(limit, offset int) ([]model.AdminLogEntry, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.logRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.logRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *auditService) ExportXLSX(w io.Writer) error {
	entries, err := s.logRepo.FindAll()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Audit Log"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Admin ID", "Admin", "Action", "Entity Type", "Entity ID", "Details", "Timestamp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.ID,
			entry.AdminID,
			entry.Admin.Email,
			string(entry.Action),
			entry.EntityType,
			entry.EntityID,
			entry.Details,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write audit export: %w", err)
	}

	logger.Info("Audit log exported", map[string]interface{}{
		"entries": len(entries),
	})
	return nil
}
