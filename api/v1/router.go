package v1

import (
	"github.com/formbuilder-api/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", Register)
		authGroup.POST("/login", Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), GetCurrentUser)
		authGroup.PUT("/profile", middleware.AuthMiddleware(), UpdateProfile)
		authGroup.DELETE("/profile", middleware.AuthMiddleware(), DeleteProfile)
	}

	// Template endpoints; the public listing stays readable without a token
	templateGroup := router.Group("/templates")
	{
		templateGroup.GET("/public", middleware.OptionalAuthMiddleware(), ListPublicTemplates)

		authed := templateGroup.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/user", ListOwnTemplates)
			authed.POST("", CreateTemplate)
			authed.DELETE("", BulkDeleteTemplates)
			authed.GET("/:id", GetTemplate)
			authed.PUT("/:id", UpdateTemplate)
			authed.DELETE("/:id", DeleteTemplate)
			authed.POST("/:id/questions", AppendQuestion)
			authed.POST("/:id/access", GrantTemplateAccess)
			authed.DELETE("/:id/access/:userId", RevokeTemplateAccess)
		}
	}

	// Form endpoints - protected by AuthMiddleware
	formGroup := router.Group("/forms")
	formGroup.Use(middleware.AuthMiddleware())
	{
		formGroup.GET("", ListOwnForms)
		formGroup.POST("/create/:templateId", CreateForm)
		formGroup.GET("/template/:templateId", ListTemplateForms)
		formGroup.GET("/:id", GetForm)
		formGroup.PUT("/:id", UpdateForm)
		formGroup.DELETE("/:id", DeleteForm)
	}

	// Like endpoints - protected by AuthMiddleware
	likeGroup := router.Group("/likes")
	likeGroup.Use(middleware.AuthMiddleware())
	{
		likeGroup.POST("/:templateId", ToggleLike)
		likeGroup.GET("/:templateId/count", GetLikeCount)
		likeGroup.GET("/:templateId/status", GetLikeStatus)
	}

	// Comment endpoints; listing is public
	commentGroup := router.Group("/comments")
	{
		commentGroup.GET("/template/:templateId", ListComments)
		commentGroup.POST("", middleware.AuthMiddleware(), CreateComment)
		commentGroup.DELETE("/:id", middleware.AuthMiddleware(), DeleteComment)
	}

	// Tag endpoints; search is public
	tagGroup := router.Group("/tags")
	{
		tagGroup.GET("", SearchTags)
		tagGroup.POST("/update", middleware.AuthMiddleware(), UpdateTag)
	}

	// Real-time template event stream
	router.GET("/events/templates/:templateId", middleware.OptionalAuthMiddleware(), StreamTemplateEvents)

	// Admin endpoints - protected by AdminMiddleware
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/users", ListUsers)
		adminGroup.PUT("/users/:id/role", UpdateUserRole)
		adminGroup.PUT("/users/:id/block", UpdateUserBlock)
		adminGroup.DELETE("/users/:id", DeleteUser)
	}

	// Analytics endpoints
	analyticsGroup := router.Group("/analytics")
	analyticsGroup.Use(middleware.AuthMiddleware())
	{
		analyticsGroup.GET("/stats", middleware.AdminMiddleware(), GetPlatformStats)
		analyticsGroup.GET("/template/:templateId", GetTemplateAnalytics)
		analyticsGroup.GET("/user/:userId", middleware.AdminMiddleware(), GetUserAnalytics)
	}
}
