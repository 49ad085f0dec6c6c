package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	catalogapp "github.com/soleneo/backend/internal/application/catalog"
	"github.com/soleneo/backend/internal/domain/extraction"
	"github.com/soleneo/backend/internal/infrastructure/config"
	"github.com/soleneo/backend/internal/infrastructure/feed"
	"github.com/soleneo/backend/internal/infrastructure/logger"
	"github.com/soleneo/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		feedPath string
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&feedPath, "feed", "", "Path to the supplier feed file (required)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Maximum duration for the import run")
	flag.Parse()

	if feedPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: import -feed <path> [-log-level info] [-timeout 10m]")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	data, err := os.ReadFile(feedPath)
	if err != nil {
		log.Fatal("Failed to read feed file", zap.String("path", feedPath), zap.Error(err))
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	brandPatterns, err := extraction.CompileBrandRules(cfg.Catalog.BrandRules)
	if err != nil {
		log.Fatal("Failed to compile brand rules", zap.Error(err))
	}

	parser := feed.NewParser(
		feed.WithDelimiter(rune(cfg.Import.Delimiter[0])),
		feed.WithMaxErrors(cfg.Import.MaxErrors),
	)

	service := catalogapp.NewImportService(
		parser,
		brandPatterns,
		catalogapp.ReferenceData{
			FamilyCategories: cfg.Catalog.FamilyCategories,
			CategoryColors:   cfg.Catalog.CategoryColors,
			SupplierNames:    cfg.Catalog.SupplierNames,
		},
		persistence.NewGormCategoryRepository(db.DB),
		persistence.NewGormBrandRepository(db.DB),
		persistence.NewGormSupplierRepository(db.DB),
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormVariantRepository(db.DB),
		persistence.NewGormVariantAttributeRepository(db.DB),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := service.Import(ctx, data)

	fmt.Printf("Rows processed:   %d\n", result.RowsProcessed)
	fmt.Printf("Rows rejected:    %d\n", result.RowsRejected)
	fmt.Printf("Products created: %d\n", result.ProductsCreated)
	fmt.Printf("Products updated: %d\n", result.ProductsUpdated)
	fmt.Printf("Variants created: %d\n", result.VariantsCreated)
	fmt.Printf("Variants updated: %d\n", result.VariantsUpdated)
	for _, msg := range result.Errors {
		fmt.Printf("Error: %s\n", msg)
	}

	if !result.Success {
		os.Exit(1)
	}
}
