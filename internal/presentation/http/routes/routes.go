package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/config"
	domainRepo "github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/handler"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/middleware"
	"github.com/tillpoint/tillpoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Tab      *handler.TabHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Checkout *handler.CheckoutHandler
	Document *handler.DocumentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Real tokens come from the identity provider; the dev issuer is
		// only mounted outside production.
		if deps.Cfg.App.Env != "production" {
			v1.POST("/auth/dev-token", h.Auth.DevToken)
		}

		// Everything else requires an operator token.
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h)
		registerTabRoutes(protected, h, deps)
		registerCatalogRoutes(protected, h)
		registerCustomerRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(g *gin.RouterGroup, h *Handlers) {
	session := g.Group("/session")
	{
		session.GET("", h.Tab.GetSession)
		session.POST("/recover", h.Tab.RecoverSession)
	}
}

func registerTabRoutes(g *gin.RouterGroup, h *Handlers, deps *Deps) {
	tabs := g.Group("/tabs")
	{
		tabs.POST("", h.Tab.CreateTab)
		tabs.GET("/:id", h.Tab.GetTab)
		tabs.DELETE("/:id", h.Tab.CloseTab)
		tabs.PATCH("/:id", h.Tab.UpdateTab)
		tabs.POST("/:id/activate", h.Tab.ActivateTab)
		tabs.POST("/:id/pause", h.Tab.PauseTab)
		tabs.POST("/:id/resume", h.Tab.ResumeTab)
		tabs.POST("/:id/hold", h.Tab.HoldTab)
		tabs.GET("/:id/validate", h.Tab.ValidateTab)

		tabs.POST("/:id/items", h.Tab.AddItem)
		tabs.PATCH("/:id/items/:itemId/quantity", h.Tab.SetItemQuantity)
		tabs.PATCH("/:id/items/:itemId/note", h.Tab.SetItemNote)
		tabs.DELETE("/:id/items/:itemId", h.Tab.RemoveItem)

		// Checkout is the one mutation that bills the customer; it is
		// guarded by a required idempotency key.
		tabs.POST("/:id/checkout",
			middleware.IdempotencyRequired(deps.IdempotencyRepo),
			h.Checkout.Checkout,
		)

		tabs.GET("/:id/documents/pdf", h.Document.DownloadPDF)
		tabs.POST("/:id/documents/print", h.Document.PrintReceipt)
	}
}

func registerCatalogRoutes(g *gin.RouterGroup, h *Handlers) {
	products := g.Group("/products")
	{
		products.GET("", h.Catalog.SearchProducts)
		products.GET("/:id", h.Catalog.GetProduct)
	}
}

func registerCustomerRoutes(g *gin.RouterGroup, h *Handlers) {
	customers := g.Group("/customers")
	{
		customers.GET("/lookup", h.Customer.LookupByPhone)
		customers.PUT("", h.Customer.Upsert)
	}
}
