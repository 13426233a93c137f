package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/storage"
)

var allowedUploadFolders = map[string]bool{
	storage.FolderLogos:        true,
	storage.FolderDocuments:    true,
	storage.FolderMenuImages:   true,
	storage.FolderReviewImages: true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s *storage.S3Storage) *UploadController {
	return &UploadController{storage: s}
}

type presignInput struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder" binding:"required"`
}

// PresignUpload hands out a pre-signed PUT URL. Clients upload directly to
// object storage and persist the returned key on the relevant record.
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	var input presignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename, content_type and folder are required")
		return
	}

	folder := strings.ToLower(input.Folder)
	if !allowedUploadFolders[folder] {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "unknown upload folder")
		return
	}
	if !allowedContentTypes[input.ContentType] {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "unsupported content type")
		return
	}

	resp, err := ctrl.storage.PresignUpload(input.Filename, input.ContentType, folder)
	if err != nil {
		apperrors.Respond(c, err, "presign upload")
		return
	}

	c.JSON(http.StatusOK, resp)
}
