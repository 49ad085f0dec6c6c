package catalog

import (
	"strings"

	"github.com/soleneo/backend/internal/domain/shared"
)

// Category is a reference entity the import resolves products into.
// Categories are created lazily on first sighting of a family name and
// are never duplicated for the same name.
type Category struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug  string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Color string `gorm:"type:varchar(20)"` // display color, optional
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, slug, color string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
		Color:      color,
	}, nil
}

// SetColor updates the display color
func (c *Category) SetColor(color string) {
	c.Color = color
	c.Touch()
}
