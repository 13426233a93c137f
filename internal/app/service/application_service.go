package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// SubmitApplicationInput carries a vendor's stall application. Document
// fields are references to files the storage collaborator already validated
// and stored.
type SubmitApplicationInput struct {
	StallName       string   `json:"stall_name" binding:"required"`
	Description     string   `json:"description"`
	Location        string   `json:"location" binding:"required"`
	Categories      []string `json:"categories"`
	RegistrationDoc string   `json:"registration_doc"`
	PermitDoc       string   `json:"permit_doc"`
	TaxDoc          string   `json:"tax_doc"`
	LogoURL         string   `json:"logo_url"`
}

// ApplicationService owns the application lifecycle: Pending is the only
// state that can move, and it moves exactly once.
type ApplicationService interface {
	Submit(applicantID uint, input SubmitApplicationInput) (*model.Application, error)
	// Approve transitions the application to Approved and creates its stall.
	// Returns the new stall ID.
	Approve(adminID, applicationID uint, notes string) (uint, error)
	Decline(adminID, applicationID uint, notes string) error
	Archive(adminID, applicationID uint) error
	ListPending() ([]model.Application, error)
	// ArchiveStale archives applications pending longer than maxAge on
	// behalf of adminID. Returns how many were archived.
	ArchiveStale(adminID uint, maxAge time.Duration) (int, error)
}

type applicationService struct {
	appRepo   repository.ApplicationRepository
	stallRepo repository.StallRepository
	audit     AuditService
	notifier  Notifier
	db        *gorm.DB
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	stallRepo repository.StallRepository,
	audit AuditService,
	notifier Notifier,
	db *gorm.DB,
) ApplicationService {
	if notifier == nil {
		notifier = NoopNotifier
	}
	return &applicationService{
		appRepo:   appRepo,
		stallRepo: stallRepo,
		audit:     audit,
		notifier:  notifier,
		db:        db,
	}
}

func (s *applicationService) Submit(applicantID uint, input SubmitApplicationInput) (*model.Application, error) {
	if strings.TrimSpace(input.StallName) == "" {
		return nil, apperrors.Validationf("stall name is required")
	}

	hasPending, err := s.appRepo.HasPendingByApplicant(applicantID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, apperrors.Duplicatef("applicant %d already has a pending application", applicantID)
	}

	activeStalls, err := s.stallRepo.CountActiveByOwner(applicantID)
	if err != nil {
		return nil, err
	}
	if activeStalls > 0 {
		return nil, apperrors.Duplicatef("applicant %d already owns an active stall", applicantID)
	}

	app := &model.Application{
		ApplicantID:     applicantID,
		StallName:       strings.TrimSpace(input.StallName),
		Description:     input.Description,
		Location:        input.Location,
		Categories:      input.Categories,
		RegistrationDoc: input.RegistrationDoc,
		PermitDoc:       input.PermitDoc,
		TaxDoc:          input.TaxDoc,
		LogoURL:         input.LogoURL,
		Status:          model.ApplicationPending,
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	logger.Info("Application submitted", map[string]interface{}{
		"application_id": app.ID,
		"applicant_id":   applicantID,
		"stall_name":     app.StallName,
	})
	s.notifier.BroadcastEvent(EventApplicationSubmitted, app)

	return app, nil
}

func (s *applicationService) Approve(adminID, applicationID uint, notes string) (uint, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return 0, err
	}
	if app == nil {
		return 0, apperrors.NotFoundf("application %d not found", applicationID)
	}
	if app.Status != model.ApplicationPending {
		return 0, apperrors.StateConflictf("application %d is %s, not pending", applicationID, app.Status)
	}

	var stallID uint

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, apperrors.TransactionFailed(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during application approval, rolling back",
				fmt.Errorf("panic: %v", r), map[string]interface{}{
					"application_id": applicationID,
				})
		}
	}()

	// Re-check inside the transaction: a second admin may have resolved the
	// application between our read and now.
	var current model.Application
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&current, applicationID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFoundf("application %d not found", applicationID)
		}
		return 0, s.txFailed("approve", applicationID, err)
	}
	if current.Status != model.ApplicationPending {
		tx.Rollback()
		return 0, apperrors.StateConflictf("application %d is %s, not pending", applicationID, current.Status)
	}

	stall := model.FoodStall{
		OwnerID:     current.ApplicantID,
		Name:        current.StallName,
		Description: current.Description,
		Categories:  current.Categories,
		LogoURL:     current.LogoURL,
		IsActive:    true,
	}
	if err := tx.Create(&stall).Error; err != nil {
		tx.Rollback()
		return 0, s.txFailed("approve", applicationID, err)
	}

	if current.Location != "" {
		location := model.StallLocation{
			StallID: stall.ID,
			Address: current.Location,
		}
		if err := tx.Create(&location).Error; err != nil {
			tx.Rollback()
			return 0, s.txFailed("approve", applicationID, err)
		}
	}

	// The applicant becomes a stall owner unless they already hold a higher
	// role.
	if err := tx.Model(&model.User{}).
		Where("id = ? AND role = ?", current.ApplicantID, model.RoleCustomer).
		Update("role", model.RoleStallOwner).Error; err != nil {
		tx.Rollback()
		return 0, s.txFailed("approve", applicationID, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       model.ApplicationApproved,
		"review_notes": notes,
		"reviewed_by":  adminID,
		"reviewed_at":  now,
	}
	if err := tx.Model(&model.Application{}).
		Where("id = ?", applicationID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return 0, s.txFailed("approve", applicationID, err)
	}

	details := fmt.Sprintf("approved %q for applicant %d, stall %d", current.StallName, current.ApplicantID, stall.ID)
	if err := s.audit.Append(tx, adminID, model.ActionApproveApplication, "application", applicationID, details); err != nil {
		tx.Rollback()
		return 0, s.txFailed("approve", applicationID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, s.txFailed("approve", applicationID, err)
	}
	stallID = stall.ID

	logger.Info("Application approved", map[string]interface{}{
		"application_id": applicationID,
		"admin_id":       adminID,
		"stall_id":       stallID,
	})
	return stallID, nil
}

func (s *applicationService) Decline(adminID, applicationID uint, notes string) error {
	return s.resolve(adminID, applicationID, model.ApplicationDeclined, model.ActionDeclineApplication, notes)
}

func (s *applicationService) Archive(adminID, applicationID uint) error {
	return s.resolve(adminID, applicationID, model.ApplicationArchived, model.ActionArchiveApplication, "")
}

// resolve moves a pending application into a terminal state that has no side
// effects beyond the status change itself.
func (s *applicationService) resolve(adminID, applicationID uint, status model.ApplicationStatus, action model.AdminAction, notes string) error {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return apperrors.NotFoundf("application %d not found", applicationID)
	}
	if app.Status != model.ApplicationPending {
		return apperrors.StateConflictf("application %d is %s, not pending", applicationID, app.Status)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return apperrors.TransactionFailed(tx.Error)
	}

	var current model.Application
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&current, applicationID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("application %d not found", applicationID)
		}
		return s.txFailed(string(action), applicationID, err)
	}
	if current.Status != model.ApplicationPending {
		tx.Rollback()
		return apperrors.StateConflictf("application %d is %s, not pending", applicationID, current.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": adminID,
		"reviewed_at": now,
	}
	if notes != "" {
		updates["review_notes"] = notes
	}
	if err := tx.Model(&model.Application{}).
		Where("id = ?", applicationID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return s.txFailed(string(action), applicationID, err)
	}

	details := fmt.Sprintf("%s %q for applicant %d", status, current.StallName, current.ApplicantID)
	if err := s.audit.Append(tx, adminID, action, "application", applicationID, details); err != nil {
		tx.Rollback()
		return s.txFailed(string(action), applicationID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return s.txFailed(string(action), applicationID, err)
	}

	logger.Info("Application resolved", map[string]interface{}{
		"application_id": applicationID,
		"admin_id":       adminID,
		"status":         status,
	})
	return nil
}

func (s *applicationService) ListPending() ([]model.Application, error) {
	return s.appRepo.FindPending()
}

func (s *applicationService) ArchiveStale(adminID uint, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	stale, err := s.appRepo.FindPendingOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, app := range stale {
		if err := s.Archive(adminID, app.ID); err != nil {
			// A concurrent admin may have resolved it; that is fine.
			if errors.Is(err, apperrors.ErrStateConflict) || errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return archived, err
		}
		archived++
	}

	if archived > 0 {
		logger.Info("Stale applications archived", map[string]interface{}{
			"count":    archived,
			"admin_id": adminID,
		})
	}
	return archived, nil
}

func (s *applicationService) txFailed(op string, applicationID uint, err error) error {
	logger.Error("Application transaction failed", err, map[string]interface{}{
		"operation":      op,
		"application_id": applicationID,
	})
	return apperrors.TransactionFailed(err)
}
