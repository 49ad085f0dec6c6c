package catalog

import (
	"context"
)

// BrandRepository defines the persistence contract for brands
type BrandRepository interface {
	// FindByName finds a brand by its unique name
	FindByName(ctx context.Context, name string) (*Brand, error)

	// FindAll returns all brands
	FindAll(ctx context.Context) ([]Brand, error)

	// FindOrCreate returns the brand with the candidate's name,
	// creating it atomically when absent
	FindOrCreate(ctx context.Context, candidate *Brand) (*Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error
}
