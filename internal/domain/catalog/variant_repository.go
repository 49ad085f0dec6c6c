package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantRepository defines the persistence contract for variants
type VariantRepository interface {
	// FindByID finds a variant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)

	// FindBySKU finds a variant by its immutable SKU
	FindBySKU(ctx context.Context, sku string) (*Variant, error)

	// FindByIDs returns the variants for the given ids in one read;
	// missing ids are simply absent from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Variant, error)

	// Save creates or updates a variant
	Save(ctx context.Context, variant *Variant) error

	// Count returns the total number of variants
	Count(ctx context.Context) (int64, error)
}

// VariantAttributeRepository defines the persistence contract for
// derived variant attributes
type VariantAttributeRepository interface {
	// FindByVariant returns the attributes of a variant
	FindByVariant(ctx context.Context, variantID uuid.UUID) ([]VariantAttribute, error)

	// Replace deletes all attributes of the variant and creates the
	// given set in their place
	Replace(ctx context.Context, variantID uuid.UUID, attributes []*VariantAttribute) error
}
