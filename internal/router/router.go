package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hawkerhub/hawkerhub-backend/config"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/controller"
	"github.com/hawkerhub/hawkerhub-backend/internal/app/model"
	"github.com/hawkerhub/hawkerhub-backend/internal/middleware"
)

type Router struct {
	authController        *controller.AuthController
	stallController       *controller.StallController
	reviewController      *controller.ReviewController
	applicationController *controller.ApplicationController
	adminController       *controller.AdminController
	eventsController      *controller.EventsController
	uploadController      *controller.UploadController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	stallController *controller.StallController,
	reviewController *controller.ReviewController,
	applicationController *controller.ApplicationController,
	adminController *controller.AdminController,
	eventsController *controller.EventsController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		stallController:       stallController,
		reviewController:      reviewController,
		applicationController: applicationController,
		adminController:       adminController,
		eventsController:      eventsController,
		uploadController:      uploadController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "HawkerHub API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		stalls := v1.Group("/stalls")
		{
			stalls.GET("", r.stallController.ListStalls)
			stalls.GET("/:id", r.stallController.GetStall)
			stalls.GET("/:id/reviews", r.reviewController.GetStallReviews)

			stalls.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.CreateReview,
			)
			stalls.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleStallOwner, model.RoleAdmin),
				r.stallController.UpdateStall,
			)
			stalls.POST("/:id/menu-items",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(model.RoleStallOwner, model.RoleAdmin),
				r.stallController.AddMenuItem,
			)
		}

		menuItems := v1.Group("/menu-items")
		menuItems.Use(r.authMiddleware.Authenticate())
		menuItems.Use(r.authMiddleware.RequireRole(model.RoleStallOwner, model.RoleAdmin))
		{
			menuItems.PUT("/:id", r.stallController.UpdateMenuItem)
			menuItems.DELETE("/:id", r.stallController.RemoveMenuItem)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.POST("/:id/reactions", r.reviewController.React)
			reviews.DELETE("/:id/reactions", r.reviewController.Unreact)
			reviews.POST("/:id/reports", r.reviewController.ReportReview)
		}

		applications := v1.Group("/applications")
		applications.Use(r.authMiddleware.Authenticate())
		{
			applications.POST("", r.applicationController.Submit)
		}

		owner := v1.Group("/owner")
		owner.Use(r.authMiddleware.Authenticate())
		owner.Use(r.authMiddleware.RequireRole(model.RoleStallOwner, model.RoleAdmin))
		{
			owner.GET("/stalls", r.stallController.GetMyStalls)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presign", r.uploadController.PresignUpload)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		admin.Use(r.authMiddleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/applications", r.adminController.ListPendingApplications)
			admin.POST("/applications/:id/approve", r.adminController.ApproveApplication)
			admin.POST("/applications/:id/decline", r.adminController.DeclineApplication)
			admin.POST("/applications/:id/archive", r.adminController.ArchiveApplication)

			admin.GET("/moderation/cases", r.adminController.ListPendingCases)
			admin.POST("/moderation/reviews/:id/dismiss", r.adminController.DismissReports)
			admin.DELETE("/moderation/reviews/:id", r.adminController.DeleteReview)

			admin.POST("/users/convert-to-admin", r.adminController.ConvertToAdmin)

			admin.GET("/logs", r.adminController.ListAuditLog)
			admin.GET("/logs/export", r.adminController.ExportAuditLog)

			admin.GET("/events", r.eventsController.Subscribe)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
