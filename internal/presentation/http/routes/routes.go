package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vivahgalaxy/pos-api/internal/config"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/handler"
	"github.com/vivahgalaxy/pos-api/internal/presentation/http/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Category  *handler.CategoryHandler
	Sale      *handler.SaleHandler
	Return    *handler.ReturnHandler
	Dashboard *handler.DashboardHandler
}

// Setup builds the gin engine with all routes and middleware
func Setup(cfg *config.Config, h Handlers, idempotencyRepo repository.IdempotencyRepository) *gin.Engine {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins()))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitBurst)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	idempotent := middleware.Idempotency(idempotencyRepo)

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/low-stock", h.Product.LowStock)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.POST("", h.Category.Create)
		}

		sales := api.Group("/sales")
		{
			sales.GET("", h.Sale.List)
			sales.POST("", idempotent, h.Sale.Create)
			sales.GET("/:id", h.Sale.Get)
		}

		returns := api.Group("/returns")
		{
			returns.GET("", h.Return.List)
			returns.POST("", idempotent, h.Return.Create)
			returns.GET("/:id", h.Return.Get)
		}

		api.GET("/dashboard/stats", h.Dashboard.Stats)
	}

	return router
}
