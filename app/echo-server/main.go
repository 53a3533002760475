package main

import (
	"context"
	"fmt"
	"log"
	"myStorefront/app/echo-server/router"
	"myStorefront/business/customer"
	"myStorefront/business/orders"
	"myStorefront/business/product"
	"myStorefront/business/recommend"
	userService "myStorefront/business/user"
	"myStorefront/internal/middleware"
	"myStorefront/internal/repository/llm"
	psqlRepo "myStorefront/internal/repository/postgres"
	redisRepo "myStorefront/internal/repository/redis"
	"myStorefront/internal/rest"
	"myStorefront/pkg/config"
	"myStorefront/pkg/database"
	redisdb "myStorefront/pkg/database/redis"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/metrics"
	"myStorefront/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Storefront Recommendation API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis only backs the catalog cache; the API runs without it.
	var catalogCache product.CatalogCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, catalog caching disabled", err)
	} else {
		catalogCache = redisRepo.NewCatalogCache(redisClient, 5*time.Minute)
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Warn("Failed to close redis client", err)
			}
		}()
	}

	llmRepo := llm.NewLLMRepository(
		llm.LLMConfig{
			BaseURL:           cfg.LLM.BaseURL,
			APIKey:            cfg.LLM.APIKey,
			Model:             cfg.LLM.Model,
			BasicAuthUsername: cfg.LLM.BasicAuthUsername,
			BasicAuthPassword: cfg.LLM.BasicAuthPassword,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	customerRepo := psqlRepo.NewCustomerRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	eventRepo := psqlRepo.NewRecommendationEventRepository(db)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate)
	customerService := customer.NewCustomerService(customerRepo, validate)
	productService := product.NewProductService(productRepo, catalogCache)
	ordersService := orders.NewOrdersService(ordersRepo, customerRepo, productRepo)
	recommendService := recommend.NewService(customerRepo, ordersRepo, productRepo, catalogCache, llmRepo, eventRepo)

	if !recommendService.IsGenerationConfigured() {
		logger.Warn("LLM generation not configured, recommendations fall back to rules")
	}

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	customerHandler := rest.NewCustomerHandler(customerService)
	productHandler := rest.NewProductHandler(productService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	recommendationHandler := rest.NewRecommendationHandler(recommendService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupCustomerRoutes(api, customerHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)
	router.SetRecommendationRoutes(api, recommendationHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
