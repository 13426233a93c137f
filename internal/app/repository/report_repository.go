package repository

import (
	"gorm.io/gorm"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
)

type ReportRepository interface {
	Create(report *model.ReviewReport) error
	// FindUnresolved returns every unresolved report with the reporter
	// preloaded, oldest first.
	FindUnresolved() ([]model.ReviewReport, error)
	FindUnresolvedByReviewID(reviewID uint) ([]model.ReviewReport, error)
	HasUnresolvedByReporter(reviewID, reporterID uint) (bool, error)
	CountUnresolved() (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.ReviewReport) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindUnresolved() ([]model.ReviewReport, error) {
	var reports []model.ReviewReport
	err := r.db.Preload("Reporter").
		Where("resolved = ?", false).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindUnresolvedByReviewID(reviewID uint) ([]model.ReviewReport, error) {
	var reports []model.ReviewReport
	err := r.db.Preload("Reporter").
		Where("review_id = ? AND resolved = ?", reviewID, false).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) HasUnresolvedByReporter(reviewID, reporterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewReport{}).
		Where("review_id = ? AND reporter_id = ? AND resolved = ?", reviewID, reporterID, false).
		Count(&count).Error
	return count > 0, err
}

func (r *reportRepository) CountUnresolved() (int64, error) {
	var count int64
	err := r.db.Model(&model.ReviewReport{}).
		Where("resolved = ?", false).
		Count(&count).Error
	return count, err
}
