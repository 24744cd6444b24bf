package main

import (
	"fmt"
	"log"
	"net/http"

	"fleetlink/internal/config"
	"fleetlink/internal/handlers"
	"fleetlink/internal/middleware"
	"fleetlink/internal/repositories/mongodb"
	"fleetlink/internal/services"
	"fleetlink/pkg/cache"
	"fleetlink/pkg/database"
	"fleetlink/pkg/logger"
	"fleetlink/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
		Transactions:   cfg.Database.Transactions,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	// Apply index migrations
	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; repositories skip caching when it is absent
	var vehicleCache mongodb.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.Warnf("Redis unavailable, continuing without cache: %v", err)
		} else {
			defer redisCache.Close()
			vehicleCache = redisCache
		}
	}

	// Initialize repositories
	vehicleRepo := mongodb.NewVehicleRepository(db.Database, vehicleCache)
	bookingRepo := mongodb.NewBookingRepository(db)

	// Initialize services
	vehicleService := services.NewVehicleService(vehicleRepo, bookingRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, vehicleRepo, appLogger)

	// Initialize handlers
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupVehicleRoutes(v1, vehicleHandler)
		routes.SetupBookingRoutes(v1, bookingHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting %s on %s", cfg.App.Name, addr)
	appLogger.Fatalf("Server stopped: %v", http.ListenAndServe(addr, router))
}
