package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// ModerationCase aggregates the unresolved reports against one review.
type ModerationCase struct {
	Review          model.Review         `json:"review"`
	TotalReports    int                  `json:"total_reports"`
	FirstReportDate time.Time            `json:"first_report_date"`
	Reports         []model.ReviewReport `json:"reports"`
}

// ModerationService aggregates abuse reports into cases and resolves them by
// dismissal or review deletion.
type ModerationService interface {
	Report(reviewID, reporterID uint, reason model.ReportReason, customReason string) (*model.ReviewReport, error)
	// ListPendingCases groups unresolved reports by review, oldest case first.
	ListPendingCases() ([]ModerationCase, error)
	// Dismiss resolves every unresolved report for the review and leaves the
	// review untouched. Dismissing a review with no open case is a no-op.
	Dismiss(reviewID, adminID uint, reason string) error
	// DeleteReview removes the review and its reactions and resolves its
	// reports, all atomically.
	DeleteReview(reviewID, adminID uint, reason string) error
}

type moderationService struct {
	reportRepo repository.ReportRepository
	reviewRepo *repository.ReviewRepository
	audit      AuditService
	notifier   Notifier
	db         *gorm.DB
}

func NewModerationService(
	reportRepo repository.ReportRepository,
	reviewRepo *repository.ReviewRepository,
	audit AuditService,
	notifier Notifier,
	db *gorm.DB,
) ModerationService {
	if notifier == nil {
		notifier = NoopNotifier
	}
	return &moderationService{
		reportRepo: reportRepo,
		reviewRepo: reviewRepo,
		audit:      audit,
		notifier:   notifier,
		db:         db,
	}
}

func (s *moderationService) Report(reviewID, reporterID uint, reason model.ReportReason, customReason string) (*model.ReviewReport, error) {
	if !reason.Valid() {
		return nil, apperrors.Validationf("unknown report reason %q", reason)
	}
	if reason == model.ReasonOther && customReason == "" {
		return nil, apperrors.Validationf("a custom reason is required when reason is %q", model.ReasonOther)
	}

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFoundf("review %d not found", reviewID)
	}
	if review.AuthorID == reporterID {
		return nil, apperrors.Validationf("you cannot report your own review")
	}

	alreadyReported, err := s.reportRepo.HasUnresolvedByReporter(reviewID, reporterID)
	if err != nil {
		return nil, err
	}
	if alreadyReported {
		return nil, apperrors.Duplicatef("reporter %d already has an open report against review %d", reporterID, reviewID)
	}

	report := &model.ReviewReport{
		ReviewID:     reviewID,
		ReporterID:   reporterID,
		Reason:       reason,
		CustomReason: customReason,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	logger.Info("Review reported", map[string]interface{}{
		"review_id":   reviewID,
		"reporter_id": reporterID,
		"reason":      reason,
	})
	s.notifier.BroadcastEvent(EventReviewReported, report)

	return report, nil
}

func (s *moderationService) ListPendingCases() ([]ModerationCase, error) {
	reports, err := s.reportRepo.FindUnresolved()
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return []ModerationCase{}, nil
	}

	// Reports arrive oldest first, so grouping in encounter order yields
	// cases ordered by their first report.
	byReview := make(map[uint]*ModerationCase)
	order := make([]uint, 0, len(reports))
	for _, report := range reports {
		c, ok := byReview[report.ReviewID]
		if !ok {
			c = &ModerationCase{FirstReportDate: report.CreatedAt}
			byReview[report.ReviewID] = c
			order = append(order, report.ReviewID)
		}
		c.Reports = append(c.Reports, report)
		c.TotalReports++
	}

	var reviews []model.Review
	if err := s.db.Preload("Author").Where("id IN ?", order).Find(&reviews).Error; err != nil {
		return nil, err
	}
	reviewByID := make(map[uint]model.Review, len(reviews))
	for _, r := range reviews {
		reviewByID[r.ID] = r
	}

	cases := make([]ModerationCase, 0, len(order))
	for _, reviewID := range order {
		c := byReview[reviewID]
		review, ok := reviewByID[reviewID]
		if !ok {
			// Review vanished while its reports were open; nothing to
			// moderate.
			continue
		}
		c.Review = review
		cases = append(cases, *c)
	}
	return cases, nil
}

func (s *moderationService) Dismiss(reviewID, adminID uint, reason string) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperrors.NotFoundf("review %d not found", reviewID)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return apperrors.TransactionFailed(tx.Error)
	}

	result := tx.Model(&model.ReviewReport{}).
		Where("review_id = ? AND resolved = ?", reviewID, false).
		Update("resolved", true)
	if result.Error != nil {
		tx.Rollback()
		return s.txFailed("dismiss", reviewID, result.Error)
	}

	if result.RowsAffected == 0 {
		// No open case: idempotent no-op, nothing changed, nothing audited.
		tx.Rollback()
		logger.Debug("Dismiss skipped, no open case", map[string]interface{}{
			"review_id": reviewID,
			"admin_id":  adminID,
		})
		return nil
	}

	details := fmt.Sprintf("dismissed %d report(s): %s", result.RowsAffected, reason)
	if err := s.audit.Append(tx, adminID, model.ActionDismissReports, "review", reviewID, details); err != nil {
		tx.Rollback()
		return s.txFailed("dismiss", reviewID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return s.txFailed("dismiss", reviewID, err)
	}

	logger.Info("Moderation case dismissed", map[string]interface{}{
		"review_id": reviewID,
		"admin_id":  adminID,
		"reports":   result.RowsAffected,
	})
	return nil
}

func (s *moderationService) DeleteReview(reviewID, adminID uint, reason string) error {
	if reason == "" {
		return apperrors.Validationf("a deletion reason is required")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return apperrors.TransactionFailed(tx.Error)
	}

	// Lock the review so a concurrent delete observes a clean not-found
	// instead of a half-removed row.
	var review model.Review
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&review, reviewID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("review %d not found", reviewID)
		}
		return s.txFailed("delete_review", reviewID, err)
	}

	if err := tx.Where("review_id = ?", reviewID).
		Delete(&model.ReviewReaction{}).Error; err != nil {
		tx.Rollback()
		return s.txFailed("delete_review", reviewID, err)
	}

	if err := tx.Delete(&model.Review{}, reviewID).Error; err != nil {
		tx.Rollback()
		return s.txFailed("delete_review", reviewID, err)
	}

	if err := tx.Model(&model.ReviewReport{}).
		Where("review_id = ? AND resolved = ?", reviewID, false).
		Update("resolved", true).Error; err != nil {
		tx.Rollback()
		return s.txFailed("delete_review", reviewID, err)
	}

	details := fmt.Sprintf("deleted review of stall %d by author %d: %s", review.StallID, review.AuthorID, reason)
	if err := s.audit.Append(tx, adminID, model.ActionDeleteReview, "review", reviewID, details); err != nil {
		tx.Rollback()
		return s.txFailed("delete_review", reviewID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return s.txFailed("delete_review", reviewID, err)
	}

	logger.Info("Review deleted by moderator", map[string]interface{}{
		"review_id": reviewID,
		"admin_id":  adminID,
	})
	return nil
}

func (s *moderationService) txFailed(op string, reviewID uint, err error) error {
	logger.Error("Moderation transaction failed", err, map[string]interface{}{
		"operation": op,
		"review_id": reviewID,
	})
	return apperrors.TransactionFailed(err)
}
