package catalog

import (
	"context"
)

// CategoryRepository defines the persistence contract for categories
type CategoryRepository interface {
	// FindByName finds a category by its unique name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll returns all categories
	FindAll(ctx context.Context) ([]Category, error)

	// FindOrCreate returns the category with the candidate's name,
	// creating it atomically when absent. Two concurrent first
	// sightings of the same name must resolve to one row.
	FindOrCreate(ctx context.Context, candidate *Category) (*Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}
