package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/courier"
	"github.com/shishir1337/maneelclub-sub001/internal/events"
	"github.com/shishir1337/maneelclub-sub001/internal/handler"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
	"github.com/shishir1337/maneelclub-sub001/internal/service"
	"github.com/shishir1337/maneelclub-sub001/internal/storage"
	"github.com/shishir1337/maneelclub-sub001/pkg/config"
	"github.com/shishir1337/maneelclub-sub001/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	// Repositories
	settingsRepo := repository.NewSettingsRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	cityRepo := repository.NewCityRepository(db)
	banRepo := repository.NewBannedIPRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	settingsSvc := service.NewSettingsService(settingsRepo, logger)
	couponSvc := service.NewCouponService(couponRepo, logger)
	shippingSvc := service.NewShippingService(settingsSvc)
	banlistSvc := service.NewBanlistService(banRepo, logger)
	citySvc := service.NewCityService(cityRepo)
	productSvc := service.NewProductService(productRepo, settingsSvc)
	pixelPublisher := events.NewPixelPublisher(settingsSvc, logger)
	orderSvc := service.NewOrderService(orderRepo, productRepo, couponSvc, shippingSvc, banlistSvc, pixelPublisher, logger)

	courierClient := courier.NewClient(cfg.BDCourierAPIKey, logger)

	// Storage backend, selected once for the life of the process.
	backend, err := storage.Resolve(storage.Config{
		ImageKit: storage.ImageKitConfig{
			PrivateKey:  cfg.ImageKitPrivateKey,
			URLEndpoint: cfg.ImageKitURLEndpoint,
			Folder:      cfg.ImageKitUploadFolder,
			Quality:     cfg.ImageKitQuality,
		},
		S3: storage.S3Config{
			Endpoint:  cfg.MinioEndpoint,
			Port:      cfg.MinioPort,
			UseSSL:    cfg.MinioUseSSL,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
		},
		LocalDir: cfg.UploadDir,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage backend", zap.Error(err))
	}

	// Handlers
	orderHandler := handler.NewOrderHandler(orderSvc, couponSvc, logger)
	catalogHandler := handler.NewCatalogHandler(productSvc, citySvc, settingsSvc, logger)
	adminHandler := handler.NewAdminHandler(couponSvc, citySvc, banlistSvc, productSvc, orderSvc, settingsSvc, courierClient, logger)
	uploadHandler := handler.NewUploadHandler(backend, cfg.UploadDir, logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	router.GET("/uploads/*filepath", uploadHandler.Serve)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "storefront"})
		})
		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:slug", catalogHandler.GetProduct)
		v1.GET("/cities", catalogHandler.ListCities)
		v1.GET("/settings/public", catalogHandler.PublicSettings)
		v1.POST("/coupons/validate", orderHandler.ValidateCoupon)
		v1.POST("/orders", orderHandler.Create)
		v1.GET("/orders/:number", orderHandler.GetByNumber)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminToken))
	{
		admin.GET("/coupons", adminHandler.ListCoupons)
		admin.POST("/coupons", adminHandler.CreateCoupon)
		admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
		admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

		admin.POST("/cities", adminHandler.CreateCity)
		admin.PUT("/cities/:id", adminHandler.UpdateCity)
		admin.DELETE("/cities/:id", adminHandler.DeleteCity)

		admin.GET("/banned-ips", adminHandler.ListBans)
		admin.POST("/banned-ips", adminHandler.BanIP)
		admin.DELETE("/banned-ips/:ip", adminHandler.UnbanIP)

		admin.GET("/products", adminHandler.ListAllProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)
		admin.GET("/products/low-stock", adminHandler.LowStock)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:number", adminHandler.GetOrder)
		admin.PATCH("/orders/:number/status", adminHandler.UpdateOrderStatus)

		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)

		admin.POST("/courier-check", adminHandler.CourierCheck)
		admin.POST("/uploads", uploadHandler.Upload)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
