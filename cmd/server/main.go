package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"shelflife/internal/caching"
	"shelflife/internal/config"
	"shelflife/internal/engine"
	"shelflife/internal/handlers"
	"shelflife/internal/jobs"
	"shelflife/internal/jobs/background"
	"shelflife/internal/repositories"
	"shelflife/internal/services"
	"shelflife/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Classification defaults; Normalize fills anything the config left unset.
	engineCfg := engine.Config{
		DefaultLowStockThreshold: cfg.Engine.DefaultLowStockThreshold,
		ExpiryWarningDays:        cfg.Engine.ExpiryWarningDays,
	}.Normalize()

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Create repositories and services
	itemRepo := repositories.NewItemRepository(pool)
	itemSvc := services.NewItemService(itemRepo, cacheSvc)
	reportSvc := services.NewReportService(itemRepo, cacheSvc, engineCfg)
	alertSvc := jobs.NewStockAlertService(itemRepo, engineCfg)

	// Background jobs
	scheduler := background.NewJobScheduler(alertSvc, reportSvc, cacheSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create handlers
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, version)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())

	// Health routes
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// Item routes
	e.GET("/items", itemHandlers.ListItems)
	e.POST("/items", itemHandlers.CreateItem)
	e.GET("/items/search", reportHandlers.SearchItems)
	e.GET("/items/status/:status", reportHandlers.GetItemsByStatus)
	e.GET("/items/category/:category", reportHandlers.GetItemsByCategory)
	e.GET("/items/:id", itemHandlers.GetItem)
	e.PUT("/items/:id", itemHandlers.UpdateItem)
	e.DELETE("/items/:id", itemHandlers.DeleteItem)
	e.POST("/items/:id/adjust", itemHandlers.AdjustQuantity)

	// Report routes
	e.GET("/reports/stats", reportHandlers.GetStats)
	e.GET("/reports/alerts", reportHandlers.GetAlerts)
	e.GET("/reports/activity", reportHandlers.GetActivity)

	log.Printf("Shelflife server v%s starting on port %d", version, cfg.Server.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}
