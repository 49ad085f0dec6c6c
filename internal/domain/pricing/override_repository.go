package pricing

import (
	"context"

	"github.com/google/uuid"
)

// OverrideRepository defines the persistence contract for price overrides
type OverrideRepository interface {
	// FindByCustomerAndVariant finds the override scoped to the pair
	FindByCustomerAndVariant(ctx context.Context, customerID, variantID uuid.UUID) (*PriceOverride, error)

	// FindByCustomerAndVariants returns all overrides the customer has
	// on the given variant ids in one read
	FindByCustomerAndVariants(ctx context.Context, customerID uuid.UUID, variantIDs []uuid.UUID) ([]PriceOverride, error)

	// Save creates or updates an override
	Save(ctx context.Context, override *PriceOverride) error

	// Delete removes the override scoped to the pair
	Delete(ctx context.Context, customerID, variantID uuid.UUID) error
}
