package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hawkerhub/hawkerhub-backend/config"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/repository"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	"github.com/hawkerhub/hawkerhub-backend/pkg/logger"
)

// GovernanceScheduler runs the nightly governance job: it logs a queue
// digest and archives applications that have sat pending for too long.
type GovernanceScheduler struct {
	cron          *cron.Cron
	appService    service.ApplicationService
	appRepo       repository.ApplicationRepository
	reportRepo    repository.ReportRepository
	cfg           config.GovernanceConfig
	systemAdminID uint // audit identity for automated archiving; 0 disables it
}

func NewGovernanceScheduler(
	appService service.ApplicationService,
	appRepo repository.ApplicationRepository,
	reportRepo repository.ReportRepository,
	cfg config.GovernanceConfig,
	systemAdminID uint,
) *GovernanceScheduler {
	return &GovernanceScheduler{
		cron:          cron.New(),
		appService:    appService,
		appRepo:       appRepo,
		reportRepo:    reportRepo,
		cfg:           cfg,
		systemAdminID: systemAdminID,
	}
}

// Start registers the nightly run.
func (s *GovernanceScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.DigestSchedule, s.runOnce)
	if err != nil {
		logger.Error("Failed to schedule governance job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Governance scheduler started", map[string]interface{}{
		"schedule":               s.cfg.DigestSchedule,
		"stale_application_days": s.cfg.StaleApplicationDays,
	})
	return nil
}

// Stop stops the scheduler.
func (s *GovernanceScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Governance scheduler stopped")
}

func (s *GovernanceScheduler) runOnce() {
	pendingApps, err := s.appRepo.CountPending()
	if err != nil {
		logger.Error("Governance digest: failed to count pending applications", err)
		return
	}
	openReports, err := s.reportRepo.CountUnresolved()
	if err != nil {
		logger.Error("Governance digest: failed to count unresolved reports", err)
		return
	}

	logger.Info("Governance queue digest", map[string]interface{}{
		"pending_applications": pendingApps,
		"unresolved_reports":   openReports,
	})

	if s.cfg.StaleApplicationDays <= 0 || s.systemAdminID == 0 {
		return
	}

	maxAge := time.Duration(s.cfg.StaleApplicationDays) * 24 * time.Hour
	archived, err := s.appService.ArchiveStale(s.systemAdminID, maxAge)
	if err != nil {
		logger.Error("Failed to archive stale applications", err, map[string]interface{}{
			"archived_so_far": archived,
		})
		return
	}
	if archived > 0 {
		logger.Info("Archived stale applications", map[string]interface{}{
			"count": archived,
		})
	}
}
