package routes

import (
	"net/http"
	"time"

	"servicefinder/handlers"
	"servicefinder/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the service directory endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		// Search and details are public.
		api.GET("", hb.Catalog.SearchHandler)
		api.GET("/:id", hb.Catalog.DetailsHandler)
		api.GET("/:id/reviews", hb.Review.ListReviewsHandler)

		// Listing management requires authentication.
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/mine", hb.Catalog.ListMineHandler)
		api.POST("", hb.Catalog.CreateServiceHandler)
		api.PUT("/:id", hb.Catalog.UpdateServiceHandler)
		api.DELETE("/:id", hb.Catalog.DeleteServiceHandler)
	}
}

// RegisterReviewRoutes registers review submission and management endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Review.SubmitReviewHandler)
		api.GET("/mine", hb.Review.MyReviewsHandler)
		api.PUT("/:id", hb.Review.EditReviewHandler)
		api.DELETE("/:id", hb.Review.DeleteReviewHandler)
		api.POST("/:id/respond", hb.Review.RespondToReviewHandler)
	}
}

// RegisterBookmarkRoutes registers bookmark endpoints.
func RegisterBookmarkRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookmarks")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Bookmark.ListBookmarksHandler)
		api.POST("/toggle", hb.Bookmark.ToggleBookmarkHandler)
		api.GET("/status/:serviceId", hb.Bookmark.IsBookmarkedHandler)
	}
}

// RegisterModerationRoutes registers content flagging endpoints.
func RegisterModerationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/flags")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Moderation.CreateFlagHandler)
		api.GET("/status/:contentType/:objectId", hb.Moderation.CheckFlagStatusHandler)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Notification.ListNotificationsHandler)
		api.GET("/unread-count", hb.Notification.UnreadCountHandler)
		api.POST("/:id/read", hb.Notification.MarkNotificationReadHandler)
		api.DELETE("/:id", hb.Notification.DeleteNotificationHandler)
	}
}

// RegisterAdminRoutes registers endpoints for moderation and listing approval.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnlyMiddleware())
		admin.GET("/flags", hb.Moderation.ListPendingFlagsHandler)
		admin.POST("/flags/:id", hb.Moderation.AdjudicateFlagHandler)
		admin.PUT("/services/:id/status", hb.Catalog.SetStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "servicefinder up"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterBookmarkRoutes(r, hb)
	RegisterModerationRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
