package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hyunsoo-dev/matzip-backend/config"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/controller"
	"github.com/hyunsoo-dev/matzip-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	shopController      *controller.ShopController
	reviewController    *controller.ReviewController
	tagController       *controller.TagController
	orderController     *controller.OrderRecordController
	ailogController     *controller.AILogController
	dashboardController *controller.DashboardController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	shopController *controller.ShopController,
	reviewController *controller.ReviewController,
	tagController *controller.TagController,
	orderController *controller.OrderRecordController,
	ailogController *controller.AILogController,
	dashboardController *controller.DashboardController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		shopController:      shopController,
		reviewController:    reviewController,
		tagController:       tagController,
		orderController:     orderController,
		ailogController:     ailogController,
		dashboardController: dashboardController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
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
			"message": "MATZIP API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.POST("/refresh", r.authController.Refresh)
		}

		users := v1.Group("/users/me")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("", r.authController.GetMe)
			users.PATCH("", r.authController.UpdateMe)
			users.GET("/tags", r.tagController.ListMyTags)
			users.PUT("/tags", r.tagController.AssignMyTags)
			users.GET("/orders", r.orderController.ListMyOrders)
		}

		shops := v1.Group("/shops")
		{
			shops.GET("", r.shopController.ListShops)
			shops.GET("/:id", r.shopController.GetShop)
			shops.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.shopController.CreateShop,
			)
			shops.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.shopController.UpdateShop,
			)
			shops.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.shopController.DeleteShop,
			)

			shops.GET("/:id/tags", r.tagController.ListShopTags)
			shops.PUT("/:id/tags",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.AssignShopTags,
			)

			shops.GET("/:id/reviews", r.reviewController.ListShopReviews)
			shops.POST("/:id/reviews", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)

			// 추천은 비로그인도 가능. 로그인 상태면 취향 태그가 반영된다.
			shops.GET("/:id/reviews/recommend", r.authMiddleware.OptionalAuthenticate(), r.reviewController.RecommendReviews)
			shops.POST("/:id/reviews/ai-draft", r.authMiddleware.Authenticate(), r.reviewController.GenerateDraft)

			shops.POST("/:id/orders", r.authMiddleware.Authenticate(), r.orderController.RecordVisit)
			shops.GET("/:id/orders",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.orderController.ListShopOrders,
			)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("/:id/like", r.authMiddleware.Authenticate(), r.reviewController.LikeReview)
			reviews.POST("/:id/hide",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.reviewController.HideReview,
			)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.CreateTag,
			)
		}

		ailogs := v1.Group("/ai-logs")
		ailogs.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			ailogs.GET("", r.ailogController.ListLogs)
			ailogs.GET("/summary", r.ailogController.GetSummary)
			ailogs.GET("/stream", r.ailogController.StreamLogs)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			dashboard.GET("/stats", r.dashboardController.GetStats)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned", r.uploadController.GetPresignedURL)
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
