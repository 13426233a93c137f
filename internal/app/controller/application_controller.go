package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

type ApplicationController struct {
	appService service.ApplicationService
}

func NewApplicationController(appService service.ApplicationService) *ApplicationController {
	return &ApplicationController{appService: appService}
}

// Submit files a new stall application for the authenticated caller.
func (ctrl *ApplicationController) Submit(c *gin.Context) {
	applicantID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var input service.SubmitApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid application payload")
		return
	}

	app, err := ctrl.appService.Submit(applicantID, input)
	if err != nil {
		apperrors.Respond(c, err, "submit application")
		return
	}

	c.JSON(http.StatusCreated, app)
}
