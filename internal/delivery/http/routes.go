package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rikbanerjee/thecustomhub/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/featured", handler.FeaturedProducts)
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/related", handler.RelatedProducts)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", handler.ListCategories)
			categories.GET("/:id", handler.GetCategory)
			categories.GET("/:id/products", handler.CategoryProducts)
		}

		v1.GET("/search", handler.SearchProducts)
		v1.GET("/tags", handler.ListTags)
		v1.GET("/types", handler.ListTypes)
		v1.GET("/subcategories", handler.ListSubcategories)
		v1.GET("/stats", handler.GetStats)
		v1.POST("/contact", handler.SubmitContact)
	}

	return router
}
