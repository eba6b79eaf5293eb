package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mawuli-dev/glambook/internal/container"
	"github.com/mawuli-dev/glambook/internal/handlers"
	"github.com/mawuli-dev/glambook/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container, frontendURL string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "glambook-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.SignUp(container.ProfileService))
		v1.POST("/login", handlers.Login(container.ProfileService))
		v1.GET("/auth/google", handlers.GoogleAuth(container.ProfileService))
		v1.GET("/auth/callback", handlers.GoogleAuthCallback())
		v1.POST("/logout", handlers.Logout())

		// The public presentation host: unauthenticated third-party viewing
		v1.GET("/public-profile/:owner_id", handlers.GetPublicProfile(container.PresentationService))
		v1.GET("/templates", handlers.ListTemplates(container.SelectionService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.ProfileService, container.Logger))

	profileRoutes := protected.Group("/profile")
	{
		profileRoutes.GET("", handlers.GetMyProfile(container.ProfileService))
		profileRoutes.PUT("", handlers.SaveMyProfile(container.ProfileService))
		profileRoutes.PATCH("", handlers.PatchMyProfile(container.ProfileService))
		profileRoutes.GET("/meta", handlers.ProfileMeta())
		profileRoutes.GET("/views", handlers.GetMyViewStats(container.PresentationService))

		// Template selection: browse/preview/pick/history
		profileRoutes.POST("/template/preview", handlers.PreviewTemplate(container.ProfileService, container.SelectionService))
		profileRoutes.PUT("/template", handlers.SelectTemplate(container.ProfileService, container.SelectionService))
		profileRoutes.GET("/template/events", handlers.TemplateEvents(container.SelectionService))

		// Media
		profileRoutes.POST("/images", handlers.UploadPortfolioImage(container.ProfileService))
		profileRoutes.DELETE("/images/:index", handlers.RemovePortfolioImage(container.ProfileService))
		profileRoutes.POST("/avatar", handlers.UploadAvatar(container.ProfileService))
		profileRoutes.POST("/banner", handlers.UploadBanner(container.ProfileService))
	}

	return r
}
