package catalogapp

import (
	"context"
	"sync"

	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/extraction"
)

// importCache memoizes the reference entities resolved during one import
// run. It is created per run, pre-seeded from the store, and discarded
// when the run ends. All access goes through one mutex so parallel group
// workers cannot create the same category, brand or supplier twice.
type importCache struct {
	mu         sync.Mutex
	categories map[string]*catalog.Category
	brands     map[string]*catalog.Brand
	suppliers  map[string]*catalog.Supplier
	slugs      map[string]struct{} // product slugs claimed during this run
}

func newImportCache() *importCache {
	return &importCache{
		categories: make(map[string]*catalog.Category),
		brands:     make(map[string]*catalog.Brand),
		suppliers:  make(map[string]*catalog.Supplier),
		slugs:      make(map[string]struct{}),
	}
}

// seed loads the already-persisted reference entities so a re-import of
// the same feed reads them from memory instead of the store.
func (c *importCache) seed(ctx context.Context, categories catalog.CategoryRepository, brands catalog.BrandRepository, suppliers catalog.SupplierRepository) error {
	existingCategories, err := categories.FindAll(ctx)
	if err != nil {
		return err
	}
	existingBrands, err := brands.FindAll(ctx)
	if err != nil {
		return err
	}
	existingSuppliers, err := suppliers.FindAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range existingCategories {
		c.categories[existingCategories[i].Name] = &existingCategories[i]
	}
	for i := range existingBrands {
		c.brands[existingBrands[i].Name] = &existingBrands[i]
	}
	for i := range existingSuppliers {
		c.suppliers[existingSuppliers[i].Name] = &existingSuppliers[i]
	}
	return nil
}

// category returns the category for the name, creating it on first
// sighting. The repository FindOrCreate backs the cache miss, so two
// concurrent runs converge on the same row.
func (c *importCache) category(ctx context.Context, repo catalog.CategoryRepository, name, color string) (*catalog.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.categories[name]; ok {
		return cached, nil
	}

	candidate, err := catalog.NewCategory(name, extraction.Slugify(name), color)
	if err != nil {
		return nil, err
	}
	created, err := repo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	c.categories[name] = created
	return created, nil
}

func (c *importCache) brand(ctx context.Context, repo catalog.BrandRepository, name string) (*catalog.Brand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.brands[name]; ok {
		return cached, nil
	}

	candidate, err := catalog.NewBrand(name, extraction.Slugify(name))
	if err != nil {
		return nil, err
	}
	created, err := repo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	c.brands[name] = created
	return created, nil
}

func (c *importCache) supplier(ctx context.Context, repo catalog.SupplierRepository, name, code string) (*catalog.Supplier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.suppliers[name]; ok {
		return cached, nil
	}

	candidate, err := catalog.NewSupplier(name, extraction.Slugify(name), code)
	if err != nil {
		return nil, err
	}
	created, err := repo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	c.suppliers[name] = created
	return created, nil
}

// slugTaken reports whether the slug was already claimed during this run.
func (c *importCache) slugTaken(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.slugs[slug]
	return ok
}

// claimSlug reserves a slug for the rest of the run.
func (c *importCache) claimSlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slugs[slug] = struct{}{}
}
