package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

// AdminController exposes the governance operations to the admin UI. Every
// handler resolves the acting admin from the authenticated context and
// passes it down explicitly.
type AdminController struct {
	appService        service.ApplicationService
	moderationService service.ModerationService
	adminService      service.AdminService
	auditService      service.AuditService
}

func NewAdminController(
	appService service.ApplicationService,
	moderationService service.ModerationService,
	adminService service.AdminService,
	auditService service.AuditService,
) *AdminController {
	return &AdminController{
		appService:        appService,
		moderationService: moderationService,
		adminService:      adminService,
		auditService:      auditService,
	}
}

// ---- Application queue ----

func (ctrl *AdminController) ListPendingApplications(c *gin.Context) {
	apps, err := ctrl.appService.ListPending()
	if err != nil {
		apperrors.Respond(c, err, "list pending applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  apps,
		"total": len(apps),
	})
}

type reviewNotesInput struct {
	Notes string `json:"notes"`
}

func (ctrl *AdminController) ApproveApplication(c *gin.Context) {
	adminID, applicationID, ok := ctrl.adminAndParamID(c)
	if !ok {
		return
	}

	var input reviewNotesInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid payload")
		return
	}

	stallID, err := ctrl.appService.Approve(adminID, applicationID, input.Notes)
	if err != nil {
		apperrors.Respond(c, err, "approve application")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application_id": applicationID,
		"stall_id":       stallID,
	})
}

func (ctrl *AdminController) DeclineApplication(c *gin.Context) {
	adminID, applicationID, ok := ctrl.adminAndParamID(c)
	if !ok {
		return
	}

	var input reviewNotesInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid payload")
		return
	}

	if err := ctrl.appService.Decline(adminID, applicationID, input.Notes); err != nil {
		apperrors.Respond(c, err, "decline application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"application_id": applicationID})
}

func (ctrl *AdminController) ArchiveApplication(c *gin.Context) {
	adminID, applicationID, ok := ctrl.adminAndParamID(c)
	if !ok {
		return
	}

	if err := ctrl.appService.Archive(adminID, applicationID); err != nil {
		apperrors.Respond(c, err, "archive application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"application_id": applicationID})
}

// ---- Review moderation ----

func (ctrl *AdminController) ListPendingCases(c *gin.Context) {
	cases, err := ctrl.moderationService.ListPendingCases()
	if err != nil {
		apperrors.Respond(c, err, "list moderation cases")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  cases,
		"total": len(cases),
	})
}

type moderationReasonInput struct {
	Reason string `json:"reason"`
}

func (ctrl *AdminController) DismissReports(c *gin.Context) {
	adminID, reviewID, ok := ctrl.adminAndParamID(c)
	if !ok {
		return
	}

	var input moderationReasonInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid payload")
		return
	}

	if err := ctrl.moderationService.Dismiss(reviewID, adminID, input.Reason); err != nil {
		apperrors.Respond(c, err, "dismiss reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"review_id": reviewID})
}

func (ctrl *AdminController) DeleteReview(c *gin.Context) {
	adminID, reviewID, ok := ctrl.adminAndParamID(c)
	if !ok {
		return
	}

	var input moderationReasonInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid payload")
		return
	}

	if err := ctrl.moderationService.DeleteReview(reviewID, adminID, input.Reason); err != nil {
		apperrors.Respond(c, err, "delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"review_id": reviewID})
}

// ---- Privilege escalation ----

type convertToAdminInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (ctrl *AdminController) ConvertToAdmin(c *gin.Context) {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var input convertToAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "a valid email is required")
		return
	}

	user, stallsRemoved, err := ctrl.adminService.ConvertToAdmin(input.Email, adminID)
	if err != nil {
		apperrors.Respond(c, err, "convert to admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           user,
		"stalls_removed": stallsRemoved,
	})
}

// ---- Audit log ----

func (ctrl *AdminController) ListAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := ctrl.auditService.List(limit, offset)
	if err != nil {
		apperrors.Respond(c, err, "list audit log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"total": total,
	})
}

func (ctrl *AdminController) ExportAuditLog(c *gin.Context) {
	filename := fmt.Sprintf("audit-log-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := ctrl.auditService.ExportXLSX(c.Writer); err != nil {
		apperrors.Respond(c, err, "export audit log")
		return
	}
}

// adminAndParamID extracts the acting admin from the context and the target
// entity ID from the :id path parameter.
func (ctrl *AdminController) adminAndParamID(c *gin.Context) (adminID, entityID uint, ok bool) {
	adminID, found := middleware.CallerID(c)
	if !found {
		apperrors.Unauthorized(c, "")
		return 0, 0, false
	}

	raw, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return 0, 0, false
	}
	return adminID, uint(raw), true
}
