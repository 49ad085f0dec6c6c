package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/soleneo/backend/internal/domain/shared"
)

// Product groups the variants of one product family. Its durable
// identity across imports is the (group key, category) pair; the slug is
// assigned once at creation and never changes afterwards, so published
// URLs survive re-imports.
type Product struct {
	shared.BaseEntity
	GroupKey   string     `gorm:"type:varchar(80);not null;uniqueIndex"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Slug       string     `gorm:"type:varchar(220);not null;uniqueIndex"`
	Family     string     `gorm:"type:varchar(100);not null"`
	CategoryID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BrandID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(groupKey, name, slug, family string, categoryID uuid.UUID) (*Product, error) {
	if strings.TrimSpace(groupKey) == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_KEY", "Product group key cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Product slug cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		GroupKey:   groupKey,
		Name:       name,
		Slug:       slug,
		Family:     family,
		CategoryID: categoryID,
	}, nil
}

// UpdateDescriptive refreshes the mutable descriptive fields from a new
// import pass. Identity fields (group key, slug) are never touched.
func (p *Product) UpdateDescriptive(name, family string, categoryID uuid.UUID, brandID *uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}

	p.Name = name
	p.Family = family
	p.CategoryID = categoryID
	p.BrandID = brandID
	p.Touch()

	return nil
}

// SetBrand assigns the detected brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.Touch()
}

// HasBrand returns true if a brand was detected for the product
func (p *Product) HasBrand() bool {
	return p.BrandID != nil
}
