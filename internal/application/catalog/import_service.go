package catalogapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/extraction"
	"github.com/soleneo/backend/internal/domain/shared"
	"github.com/soleneo/backend/internal/infrastructure/feed"
	"go.uber.org/zap"
)

// productGroup collects the feed rows that normalize to one product.
type productGroup struct {
	baseName     string
	brand        string
	groupKey     string
	family       string
	categoryName string
	variants     []feed.ParsedVariant
}

// ImportService is the catalog upsert engine. One Import call processes
// one supplier feed: parse, group by normalized identity, then reconcile
// products, variants and attributes against the store. Row and group
// failures are recorded and skipped; only unreadable input or an
// unreachable store fails the whole run.
type ImportService struct {
	parser        *feed.Parser
	brandPatterns []extraction.BrandPattern
	ref           ReferenceData

	categoryRepo  catalog.CategoryRepository
	brandRepo     catalog.BrandRepository
	supplierRepo  catalog.SupplierRepository
	productRepo   catalog.ProductRepository
	variantRepo   catalog.VariantRepository
	attributeRepo catalog.VariantAttributeRepository

	logger *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	parser *feed.Parser,
	brandPatterns []extraction.BrandPattern,
	ref ReferenceData,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	supplierRepo catalog.SupplierRepository,
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	attributeRepo catalog.VariantAttributeRepository,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		parser:        parser,
		brandPatterns: brandPatterns,
		ref:           ref,
		categoryRepo:  categoryRepo,
		brandRepo:     brandRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		attributeRepo: attributeRepo,
		logger:        logger,
	}
}

// Import runs one full import pass over a raw supplier feed.
func (s *ImportService) Import(ctx context.Context, data []byte) *ImportResult {
	result := &ImportResult{}

	parsed, err := s.parser.Parse(data)
	if err != nil {
		// Unreadable input fails the run outright with zeroed counts
		result.Errors = append(result.Errors, fmt.Sprintf("feed parsing failed: %v", err))
		result.Success = false
		s.logger.Error("catalog import aborted", zap.Error(err))
		return result
	}

	result.RowsProcessed = len(parsed.Variants)
	result.RowsRejected = parsed.Rejected
	if parsed.Rejected > 0 {
		s.logger.Warn("rows rejected during feed parsing",
			zap.Int("rejected", parsed.Rejected),
			zap.Int("accepted", len(parsed.Variants)))
		for _, rowErr := range parsed.Errors.Errors() {
			s.logger.Debug("rejected row", zap.Int("row", rowErr.Row), zap.String("reason", rowErr.Message))
		}
	}

	cache := newImportCache()
	if err := cache.seed(ctx, s.categoryRepo, s.brandRepo, s.supplierRepo); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("loading reference entities failed: %v", err))
		result.Success = false
		return result
	}

	groups, order := s.groupVariants(parsed.Variants)
	for _, key := range order {
		s.processGroup(ctx, cache, groups[key], result)
	}

	result.Success = len(result.Errors) == 0
	s.logger.Info("catalog import finished",
		zap.Int("rows_processed", result.RowsProcessed),
		zap.Int("rows_rejected", result.RowsRejected),
		zap.Int("products_created", result.ProductsCreated),
		zap.Int("products_updated", result.ProductsUpdated),
		zap.Int("variants_created", result.VariantsCreated),
		zap.Int("variants_updated", result.VariantsUpdated),
		zap.Int("errors", len(result.Errors)),
		zap.Bool("success", result.Success))
	return result
}

// groupVariants buckets rows by group key, the same identity the store
// looks products up by. Rows whose families disagree still land in one
// group; the first row's family resolves the category. Iteration order
// follows first appearance in the feed so runs are deterministic.
func (s *ImportService) groupVariants(variants []feed.ParsedVariant) (map[string]*productGroup, []string) {
	groups := make(map[string]*productGroup)
	var order []string

	for _, v := range variants {
		baseName := extraction.ReduceBaseName(v.Designation)
		brand, _ := extraction.DetectBrand(v.Designation, s.brandPatterns)
		groupKey := extraction.GroupKey(baseName, brand)

		group, ok := groups[groupKey]
		if !ok {
			group = &productGroup{
				baseName:     baseName,
				brand:        brand,
				groupKey:     groupKey,
				family:       v.Family,
				categoryName: s.categoryName(v.Family),
			}
			groups[groupKey] = group
			order = append(order, groupKey)
		}
		group.variants = append(group.variants, v)
	}

	return groups, order
}

// processGroup reconciles one product and its variants. A group-level
// failure skips the whole group; a variant-level failure skips only that
// variant.
func (s *ImportService) processGroup(ctx context.Context, cache *importCache, group *productGroup, result *ImportResult) {
	category, err := cache.category(ctx, s.categoryRepo, group.categoryName, s.ref.CategoryColors[group.categoryName])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("group %q: resolving category %q: %v", group.baseName, group.categoryName, err))
		return
	}

	var brandID *uuid.UUID
	if group.brand != "" {
		brand, err := cache.brand(ctx, s.brandRepo, group.brand)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("group %q: resolving brand %q: %v", group.baseName, group.brand, err))
			return
		}
		brandID = &brand.ID
	}

	product, created, err := s.upsertProduct(ctx, cache, group, category.ID, brandID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("group %q: %v", group.baseName, err))
		return
	}
	if created {
		result.ProductsCreated++
	} else {
		result.ProductsUpdated++
	}

	for _, row := range group.variants {
		created, err := s.upsertVariant(ctx, cache, product.ID, row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("variant %q: %v", row.SKU, err))
			continue
		}
		if created {
			result.VariantsCreated++
		} else {
			result.VariantsUpdated++
		}
	}
}

// upsertProduct finds the product by its durable group key and updates
// the mutable descriptive fields, or creates it with a freshly allocated
// slug. Group key and slug never change after creation.
func (s *ImportService) upsertProduct(ctx context.Context, cache *importCache, group *productGroup, categoryID uuid.UUID, brandID *uuid.UUID) (*catalog.Product, bool, error) {
	product, err := s.productRepo.FindByGroupKey(ctx, group.groupKey)
	switch {
	case err == nil:
		if err := product.UpdateDescriptive(group.baseName, group.family, categoryID, brandID); err != nil {
			return nil, false, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, false, err
		}
		return product, false, nil

	case errors.Is(err, shared.ErrNotFound):
		slug, err := s.allocateSlug(ctx, cache, group.baseName)
		if err != nil {
			return nil, false, err
		}
		product, err := catalog.NewProduct(group.groupKey, group.baseName, slug, group.family, categoryID)
		if err != nil {
			return nil, false, err
		}
		product.SetBrand(brandID)
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, false, err
		}
		return product, true, nil

	default:
		return nil, false, err
	}
}

// allocateSlug derives a URL slug from the base name, disambiguating
// collisions with a numeric suffix. Slugs claimed earlier in the run
// count as taken even before they are persisted.
func (s *ImportService) allocateSlug(ctx context.Context, cache *importCache, baseName string) (string, error) {
	base := extraction.Slugify(baseName)
	if base == "" {
		base = "produit"
	}

	slug := base
	for n := 2; ; n++ {
		taken := cache.slugTaken(slug)
		if !taken {
			exists, err := s.productRepo.ExistsBySlug(ctx, slug)
			if err != nil {
				return "", err
			}
			taken = exists
		}
		if !taken {
			cache.claimSlug(slug)
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// upsertVariant overwrites the variant's state from the feed row. The
// feed is the authoritative source for variant state on every pass.
func (s *ImportService) upsertVariant(ctx context.Context, cache *importCache, productID uuid.UUID, row feed.ParsedVariant) (bool, error) {
	variant, err := s.variantRepo.FindBySKU(ctx, row.SKU)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		variant, err = catalog.NewVariant(row.SKU, productID, row.Designation)
		if err != nil {
			return false, err
		}
		created = true
	case err != nil:
		return false, err
	}

	var supplierID *uuid.UUID
	if row.SupplierCode != "" {
		supplier, err := cache.supplier(ctx, s.supplierRepo, s.supplierName(row.SupplierCode), row.SupplierCode)
		if err != nil {
			return false, err
		}
		supplierID = &supplier.ID
	}

	var power *float64
	if value, ok := extraction.ExtractPower(row.Designation); ok {
		power = &value
	}
	var capacityValue *float64
	capacityUnit := ""
	if value, unit, ok := extraction.ExtractCapacity(row.Designation); ok {
		capacityValue = &value
		capacityUnit = unit
	}

	if err := variant.ApplyImport(row.Designation, power, capacityValue, capacityUnit, row.SupplierRef, supplierID, row.Stock, row.Price); err != nil {
		return false, err
	}
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return false, err
	}

	// Attributes are rebuilt from scratch so stale facts from earlier
	// designations cannot survive a re-import
	attributes := buildAttributes(variant.ID, row.Designation)
	if err := s.attributeRepo.Replace(ctx, variant.ID, attributes); err != nil {
		return false, err
	}

	return created, nil
}

// categoryName maps the raw feed family to a category name. Unmapped
// families fall back to the raw family label so no row is ever dropped
// for missing configuration.
func (s *ImportService) categoryName(family string) string {
	if name, ok := s.ref.FamilyCategories[strings.ToLower(strings.TrimSpace(family))]; ok {
		return name
	}
	return strings.TrimSpace(family)
}

// supplierName maps the feed supplier code to a display name, falling
// back to the code itself.
func (s *ImportService) supplierName(code string) string {
	if name, ok := s.ref.SupplierNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return strings.TrimSpace(code)
}

// buildAttributes extracts the searchable facets from a designation.
func buildAttributes(variantID uuid.UUID, designation string) []*catalog.VariantAttribute {
	var attributes []*catalog.VariantAttribute

	if power, ok := extraction.ExtractPower(designation); ok {
		if a, err := catalog.NewVariantAttribute(variantID, catalog.AttrPower, formatFloat(power), "kW"); err == nil {
			attributes = append(attributes, a)
		}
	}
	if value, unit, ok := extraction.ExtractCapacity(designation); ok {
		if a, err := catalog.NewVariantAttribute(variantID, catalog.AttrCapacity, formatFloat(value), unit); err == nil {
			attributes = append(attributes, a)
		}
	}
	if phase, ok := extraction.ExtractPhase(designation); ok {
		if a, err := catalog.NewVariantAttribute(variantID, catalog.AttrPhase, phase, ""); err == nil {
			attributes = append(attributes, a)
		}
	}
	if amperage, ok := extraction.ExtractAmperage(designation); ok {
		if a, err := catalog.NewVariantAttribute(variantID, catalog.AttrAmperage, strconv.Itoa(amperage), "A"); err == nil {
			attributes = append(attributes, a)
		}
	}

	return attributes
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
