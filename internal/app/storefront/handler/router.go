package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"greenbasket/pkg/logger"
	"greenbasket/pkg/metrics"
)

// SetupRoutes настраивает все маршруты витрины с использованием Gin
func SetupRoutes(productHandler *ProductHandler, reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("storefront"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты каталога
	products := router.Group("/products")
	{
		products.GET("", productHandler.SearchProducts)
		products.GET("/latest", productHandler.GetLatestProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:product_id", productHandler.GetProduct)
		products.GET("/:product_id/reviews", reviewHandler.GetProductReviews)

		// Отзыв текущего пользователя - требует аутентификации
		products.GET("/:product_id/reviews/me", authMiddleware.Authenticate(), reviewHandler.GetOwnReview)
	}

	// Отправка отзыва - требует аутентификации
	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.POST("", reviewHandler.SubmitReview)
	}

	// Административные эндпоинты каталога
	admin := router.Group("/admin/products")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
	{
		admin.POST("", productHandler.CreateProduct)
		admin.PUT("/:product_id", productHandler.UpdateProduct)
		admin.DELETE("/:product_id", productHandler.DeleteProduct)
	}

	return router
}
