package catalog

import (
	"context"
)

// SupplierRepository defines the persistence contract for suppliers
type SupplierRepository interface {
	// FindByName finds a supplier by its unique name
	FindByName(ctx context.Context, name string) (*Supplier, error)

	// FindAll returns all suppliers
	FindAll(ctx context.Context) ([]Supplier, error)

	// FindOrCreate returns the supplier with the candidate's name,
	// creating it atomically when absent
	FindOrCreate(ctx context.Context, candidate *Supplier) (*Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}
