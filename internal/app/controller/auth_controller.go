package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/internal/app/service"
	apperrors "github.com/hawkerhub/hawkerhub-backend/internal/errors"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid registration payload")
		return
	}

	user, err := ctrl.authService.Register(input)
	if err != nil {
		apperrors.Respond(c, err, "register")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid login payload")
		return
	}

	token, user, err := ctrl.authService.Login(input)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, err.Error())
			return
		}
		apperrors.Respond(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUser(userID)
	if err != nil {
		apperrors.Respond(c, err, "get me")
		return
	}

	c.JSON(http.StatusOK, user)
}
