package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/soleneo/backend/internal/application/catalog"
	pricingapp "github.com/soleneo/backend/internal/application/pricing"
	"github.com/soleneo/backend/internal/domain/extraction"
	"github.com/soleneo/backend/internal/infrastructure/config"
	"github.com/soleneo/backend/internal/infrastructure/feed"
	"github.com/soleneo/backend/internal/infrastructure/logger"
	"github.com/soleneo/backend/internal/infrastructure/persistence"
	"github.com/soleneo/backend/internal/interfaces/http/handler"
	"github.com/soleneo/backend/internal/interfaces/http/middleware"
	"github.com/soleneo/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Soleneo Catalog Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	attributeRepo := persistence.NewGormVariantAttributeRepository(db.DB)
	overrideRepo := persistence.NewGormOverrideRepository(db.DB)

	// Compile brand detection rules; config validation already
	// guarantees the patterns are well formed
	brandPatterns, err := extraction.CompileBrandRules(cfg.Catalog.BrandRules)
	if err != nil {
		log.Fatal("Failed to compile brand rules", zap.Error(err))
	}

	parser := feed.NewParser(
		feed.WithDelimiter(rune(cfg.Import.Delimiter[0])),
		feed.WithMaxErrors(cfg.Import.MaxErrors),
	)

	// Initialize application services
	importService := catalogapp.NewImportService(
		parser,
		brandPatterns,
		catalogapp.ReferenceData{
			FamilyCategories: cfg.Catalog.FamilyCategories,
			CategoryColors:   cfg.Catalog.CategoryColors,
			SupplierNames:    cfg.Catalog.SupplierNames,
		},
		categoryRepo,
		brandRepo,
		supplierRepo,
		productRepo,
		variantRepo,
		attributeRepo,
		log,
	)
	priceService := pricingapp.NewPriceService(variantRepo, overrideRepo, log)
	overrideService := pricingapp.NewOverrideService(overrideRepo, variantRepo, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness endpoint outside the versioned API
	engine.GET("/health", healthHandler(db))

	// Register versioned routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewImportHandler(importService))
	r.Register(handler.NewPriceHandler(priceService))
	r.Register(handler.NewOverrideHandler(overrideService))
	r.Register(handler.NewSystemHandler(db.DB))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the liveness endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
