package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

type ApplicationRepository interface {
	Create(app *model.Application) error
	FindByID(id uint) (*model.Application, error)
	// FindPending returns pending applications with the applicant preloaded,
	// oldest first so the queue cannot starve.
	FindPending() ([]model.Application, error)
	// FindPendingOlderThan returns pending applications created before the
	// cutoff, oldest first. Used by the stale-application archiver.
	FindPendingOlderThan(cutoff time.Time) ([]model.Application, error)
	HasPendingByApplicant(applicantID uint) (bool, error)
	CountPending() (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *model.Application) error {
	logger.Debug("Creating application in database", map[string]interface{}{
		"applicant_id": app.ApplicantID,
		"stall_name":   app.StallName,
	})
	return r.db.Create(app).Error
}

func (r *applicationRepository) FindByID(id uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.Preload("Applicant").First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindPending() ([]model.Application, error) {
	var apps []model.Application
	err := r.db.Preload("Applicant").
		Where("status = ?", model.ApplicationPending).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) FindPendingOlderThan(cutoff time.Time) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.
		Where("status = ? AND created_at < ?", model.ApplicationPending, cutoff).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) HasPendingByApplicant(applicantID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Application{}).
		Where("applicant_id = ? AND status = ?", applicantID, model.ApplicationPending).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Application{}).
		Where("status = ?", model.ApplicationPending).
		Count(&count).Error
	return count, err
}
