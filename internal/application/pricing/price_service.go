package pricingapp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ResolvedPrice is the outcome of a price resolution for one variant.
type ResolvedPrice struct {
	VariantID       uuid.UUID            `json:"variant_id"`
	CatalogPrice    decimal.Decimal      `json:"catalog_price"`
	FinalPrice      decimal.Decimal      `json:"final_price"`
	OverrideApplied bool                 `json:"override_applied"`
	OverrideType    pricing.OverrideType `json:"override_type,omitempty"`
}

// PriceService resolves the effective price a customer pays for a
// variant. It is read-only and safe for unlimited concurrent callers.
type PriceService struct {
	variantRepo  catalog.VariantRepository
	overrideRepo pricing.OverrideRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewPriceService creates a new PriceService
func NewPriceService(variantRepo catalog.VariantRepository, overrideRepo pricing.OverrideRepository, logger *zap.Logger) *PriceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{
		variantRepo:  variantRepo,
		overrideRepo: overrideRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Resolve returns the price the customer pays for the variant. An
// anonymous caller (uuid.Nil customer) always gets the catalog price;
// so does a customer without an override, or with an override whose
// validity window excludes the current instant.
func (s *PriceService) Resolve(ctx context.Context, customerID, variantID uuid.UUID) (*ResolvedPrice, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	if customerID == uuid.Nil {
		return catalogPriceOf(variant), nil
	}

	override, err := s.overrideRepo.FindByCustomerAndVariant(ctx, customerID, variantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return catalogPriceOf(variant), nil
		}
		return nil, err
	}

	return s.resolveWith(variant, override), nil
}

// ResolveBatch resolves many variants for one customer with exactly two
// repository reads: one for the variants, one for the overrides. Each
// entry carries the same result Resolve would produce for that variant.
func (s *PriceService) ResolveBatch(ctx context.Context, customerID uuid.UUID, variantIDs []uuid.UUID) ([]ResolvedPrice, error) {
	if len(variantIDs) == 0 {
		return []ResolvedPrice{}, nil
	}

	variants, err := s.variantRepo.FindByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	variantsByID := make(map[uuid.UUID]*catalog.Variant, len(variants))
	for i := range variants {
		variantsByID[variants[i].ID] = &variants[i]
	}

	overridesByVariant := make(map[uuid.UUID]*pricing.PriceOverride)
	if customerID != uuid.Nil {
		overrides, err := s.overrideRepo.FindByCustomerAndVariants(ctx, customerID, variantIDs)
		if err != nil {
			return nil, err
		}
		for i := range overrides {
			overridesByVariant[overrides[i].VariantID] = &overrides[i]
		}
	}

	results := make([]ResolvedPrice, 0, len(variantIDs))
	for _, id := range variantIDs {
		variant, ok := variantsByID[id]
		if !ok {
			// Same contract as Resolve on an unknown variant
			return nil, shared.ErrNotFound
		}
		if override, ok := overridesByVariant[id]; ok {
			results = append(results, *s.resolveWith(variant, override))
			continue
		}
		results = append(results, *catalogPriceOf(variant))
	}

	return results, nil
}

// resolveWith applies an override to a variant's catalog price when the
// validity window includes the current instant.
func (s *PriceService) resolveWith(variant *catalog.Variant, override *pricing.PriceOverride) *ResolvedPrice {
	if !override.IsActiveAt(s.now()) {
		return catalogPriceOf(variant)
	}
	return &ResolvedPrice{
		VariantID:       variant.ID,
		CatalogPrice:    variant.Price,
		FinalPrice:      override.Apply(variant.Price),
		OverrideApplied: true,
		OverrideType:    override.Type,
	}
}

func catalogPriceOf(variant *catalog.Variant) *ResolvedPrice {
	return &ResolvedPrice{
		VariantID:    variant.ID,
		CatalogPrice: variant.Price,
		FinalPrice:   variant.Price,
	}
}
