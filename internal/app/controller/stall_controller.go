package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

type StallController struct {
	stallService *service.StallService
}

func NewStallController(stallService *service.StallService) *StallController {
	return &StallController{stallService: stallService}
}

func (ctrl *StallController) ListStalls(c *gin.Context) {
	stalls, err := ctrl.stallService.ListActive(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err, "list stalls")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  stalls,
		"total": len(stalls),
	})
}

func (ctrl *StallController) GetStall(c *gin.Context) {
	stallID, ok := paramID(c)
	if !ok {
		return
	}

	stall, err := ctrl.stallService.GetStall(stallID)
	if err != nil {
		apperrors.Respond(c, err, "get stall")
		return
	}

	c.JSON(http.StatusOK, stall)
}

func (ctrl *StallController) GetMyStalls(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	stalls, err := ctrl.stallService.GetOwnerStalls(ownerID)
	if err != nil {
		apperrors.Respond(c, err, "list my stalls")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stalls})
}

func (ctrl *StallController) UpdateStall(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	stallID, ok := paramID(c)
	if !ok {
		return
	}

	var input service.UpdateStallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid stall payload")
		return
	}

	stall, err := ctrl.stallService.UpdateStall(c.Request.Context(), stallID, ownerID, input)
	if err != nil {
		if err == service.ErrNotStallOwner {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, err.Error())
			return
		}
		apperrors.Respond(c, err, "update stall")
		return
	}

	c.JSON(http.StatusOK, stall)
}

func (ctrl *StallController) AddMenuItem(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	stallID, ok := paramID(c)
	if !ok {
		return
	}

	var input service.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid menu item payload")
		return
	}

	item, err := ctrl.stallService.AddMenuItem(stallID, ownerID, input)
	if err != nil {
		if err == service.ErrNotStallOwner {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, err.Error())
			return
		}
		apperrors.Respond(c, err, "add menu item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (ctrl *StallController) UpdateMenuItem(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	itemID, ok := paramID(c)
	if !ok {
		return
	}

	var input service.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid menu item payload")
		return
	}

	item, err := ctrl.stallService.UpdateMenuItem(itemID, ownerID, input)
	if err != nil {
		if err == service.ErrNotStallOwner {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, err.Error())
			return
		}
		apperrors.Respond(c, err, "update menu item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (ctrl *StallController) RemoveMenuItem(c *gin.Context) {
	ownerID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	itemID, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctrl.stallService.RemoveMenuItem(itemID, ownerID); err != nil {
		if err == service.ErrNotStallOwner {
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, err.Error())
			return
		}
		apperrors.Respond(c, err, "remove menu item")
		return
	}

	c.Status(http.StatusNoContent)
}
