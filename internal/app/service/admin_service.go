package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// AdminService handles the privilege escalation transaction: promoting a
// user to administrator while removing their vendor assets atomically.
type AdminService interface {
	// ConvertToAdmin promotes the user with targetEmail to admin, deleting
	// every stall they own (with menu items, location, reviews and
	// reactions) and every pending application they hold. Returns the
	// promoted user and the number of stalls removed.
	ConvertToAdmin(targetEmail string, actingAdminID uint) (*model.User, int, error)
}

type adminService struct {
	userRepo repository.UserRepository
	audit    AuditService
	db       *gorm.DB
}

func NewAdminService(userRepo repository.UserRepository, audit AuditService, db *gorm.DB) AdminService {
	return &adminService{
		userRepo: userRepo,
		audit:    audit,
		db:       db,
	}
}

func (s *adminService) ConvertToAdmin(targetEmail string, actingAdminID uint) (*model.User, int, error) {
	user, err := s.userRepo.FindByEmail(targetEmail)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, apperrors.NotFoundf("no user with email %q", targetEmail)
	}
	if user.Role == model.RoleAdmin {
		return nil, 0, apperrors.StateConflictf("user %q is already an admin", targetEmail)
	}

	priorRole := user.Role

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, 0, apperrors.TransactionFailed(tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during admin conversion, rolling back",
				fmt.Errorf("panic: %v", r), map[string]interface{}{
					"target_email": targetEmail,
				})
		}
	}()

	// Re-check the role under lock; a concurrent conversion must fail
	// cleanly rather than cascade twice.
	var current model.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&current, user.ID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.NotFoundf("no user with email %q", targetEmail)
		}
		return nil, 0, s.txFailed(targetEmail, err)
	}
	if current.Role == model.RoleAdmin {
		tx.Rollback()
		return nil, 0, apperrors.StateConflictf("user %q is already an admin", targetEmail)
	}

	var stalls []model.FoodStall
	if err := tx.Where("owner_id = ?", current.ID).Find(&stalls).Error; err != nil {
		tx.Rollback()
		return nil, 0, s.txFailed(targetEmail, err)
	}

	for _, stall := range stalls {
		if err := s.deleteStallCascade(tx, stall.ID); err != nil {
			tx.Rollback()
			return nil, 0, s.txFailed(targetEmail, err)
		}
	}

	if err := tx.Where("applicant_id = ? AND status = ?", current.ID, model.ApplicationPending).
		Delete(&model.Application{}).Error; err != nil {
		tx.Rollback()
		return nil, 0, s.txFailed(targetEmail, err)
	}

	if err := tx.Model(&model.User{}).
		Where("id = ?", current.ID).
		Update("role", model.RoleAdmin).Error; err != nil {
		tx.Rollback()
		return nil, 0, s.txFailed(targetEmail, err)
	}

	details := fmt.Sprintf("converted %s (prior role %s), removed %d stall(s)", targetEmail, priorRole, len(stalls))
	if err := s.audit.Append(tx, actingAdminID, model.ActionConvertToAdmin, "user", current.ID, details); err != nil {
		tx.Rollback()
		return nil, 0, s.txFailed(targetEmail, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, s.txFailed(targetEmail, err)
	}

	current.Role = model.RoleAdmin

	logger.Info("User converted to admin", map[string]interface{}{
		"target_email":   targetEmail,
		"acting_admin":   actingAdminID,
		"prior_role":     priorRole,
		"stalls_removed": len(stalls),
	})
	return &current, len(stalls), nil
}

// deleteStallCascade removes a stall and everything that exists only in
// relation to it, children first.
func (s *adminService) deleteStallCascade(tx *gorm.DB, stallID uint) error {
	if err := tx.Where("review_id IN (?)",
		tx.Model(&model.Review{}).Select("id").Where("stall_id = ?", stallID)).
		Delete(&model.ReviewReaction{}).Error; err != nil {
		return err
	}
	if err := tx.Where("review_id IN (?)",
		tx.Model(&model.Review{}).Select("id").Where("stall_id = ?", stallID)).
		Delete(&model.ReviewReport{}).Error; err != nil {
		return err
	}
	if err := tx.Where("stall_id = ?", stallID).Delete(&model.Review{}).Error; err != nil {
		return err
	}
	if err := tx.Where("stall_id = ?", stallID).Delete(&model.MenuItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("stall_id = ?", stallID).Delete(&model.StallLocation{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.FoodStall{}, stallID).Error
}

func (s *adminService) txFailed(targetEmail string, err error) error {
	logger.Error("Admin conversion transaction failed", err, map[string]interface{}{
		"target_email": targetEmail,
	})
	return apperrors.TransactionFailed(err)
}
