package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/config"
	"github.com/tillpoint/tillpoint-api/internal/infrastructure/archive"
	"github.com/tillpoint/tillpoint-api/internal/infrastructure/upstream"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/handler"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/routes"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/document"
	"github.com/tillpoint/tillpoint-api/pkg/logger"
	"github.com/tillpoint/tillpoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis backs the paused-tab archive, checkout idempotency and the
	// catalog search micro-cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Remote collaborator clients
	catalogClient := upstream.NewCatalogClient(cfg.Upstream.CatalogURL, cfg.Upstream.Timeout)
	customerClient := upstream.NewCustomerClient(cfg.Upstream.CustomerURL, cfg.Upstream.Timeout)
	invoiceClient := upstream.NewInvoiceClient(cfg.Upstream.InvoiceURL, cfg.Upstream.Timeout)

	tabArchive := archive.NewRedisTabArchive(redisClient)
	idempotencyRepo := archive.NewRedisIdempotencyStore(redisClient)

	// Receipt printer
	printer, err := document.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid printer configuration")
	}

	// In-memory billing sessions
	store := session.NewStore()

	// Application services
	terminalService := service.NewTerminalService(store, catalogClient, tabArchive, log)
	catalogService := service.NewCatalogService(catalogClient, redisClient, cfg.Upstream.SearchCacheTTL, log)
	customerService := service.NewCustomerService(customerClient, log)
	checkoutService := service.NewCheckoutService(store, invoiceClient, customerClient, tabArchive, log)
	documentService := service.NewDocumentService(store, cfg.Business, printer, cfg.Printer.CharWidth, log)

	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(jwtManager),
		Tab:      handler.NewTabHandler(terminalService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Customer: handler.NewCustomerHandler(customerService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Document: handler.NewDocumentHandler(documentService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
	})

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
