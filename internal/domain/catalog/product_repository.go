package catalog

import (
	"context"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	// FindByGroupKey finds a product by its durable group key
	FindByGroupKey(ctx context.Context, groupKey string) (*Product, error)

	// ExistsBySlug reports whether a product already uses the slug;
	// the import disambiguates collisions with a numeric suffix
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count returns the total number of products
	Count(ctx context.Context) (int64, error)
}
