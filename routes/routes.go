package routes

import (
	"journal-editorial-api/controllers"
	"journal-editorial-api/middleware"
	"journal-editorial-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Editorial API is running",
				})
			})

			// Public archive
			public.GET("/issues", controllers.GetPublishedIssues)
			public.GET("/issues/:id", controllers.GetIssue)
			public.GET("/articles/:id", controllers.GetArticle)
			public.GET("/search", controllers.SearchArticles)
			public.GET("/uploads/:filename", controllers.ServeUpload)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Manuscript upload
			protected.POST("/uploads", controllers.UploadFile)

			// In-app notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.POST("/notifications/mark-all-read", controllers.MarkAllNotificationsRead)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				// Authors create and track their own work
				submissions.POST("", controllers.CreateSubmission)
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("/:id/submit", controllers.SubmitDraft)
				submissions.POST("/:id/revision", controllers.SubmitRevision)

				// Editorial workflow
				submissions.POST("/:id/vet", middleware.RequireEditorial(), controllers.VetSubmission)
				submissions.POST("/:id/reviewers", middleware.RequireEditorial(), controllers.AssignReviewer)
				submissions.POST("/:id/decision", middleware.RequireEditorial(), controllers.MakeDecision)
				submissions.POST("/:id/publish", middleware.RequireEditorial(), controllers.PublishArticle)
			}

			// Manual publish lives outside /submissions/:id so the static
			// segment cannot collide with the parameter route.
			protected.POST("/manual-publish", middleware.RequireEditorial(), controllers.ManualPublish)

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", middleware.RequireRole(models.RoleReviewer), controllers.GetMyReviews)
				reviews.PUT("/:id", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReview)
				reviews.DELETE("/:id", middleware.RequireEditorial(), controllers.RemoveReviewer)
			}

			// Issues
			issues := protected.Group("/issues")
			{
				issues.POST("", middleware.RequireEditorial(), controllers.CreateIssue)
				issues.POST("/:id/publish", middleware.RequireEditorial(), controllers.PublishIssue)
			}

			// Editorial issue listing, drafts included
			protected.GET("/editor/issues", middleware.RequireEditorial(), controllers.GetAllIssues)

			// Dashboard
			protected.GET("/dashboard/editor", middleware.RequireEditorial(), controllers.GetEditorDashboard)

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.GetUsers)
				admin.PUT("/users/:id/role", controllers.UpdateUserRole)
			}
		}
	}
}
