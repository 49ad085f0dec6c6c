package catalog

import (
	"strings"

	"github.com/soleneo/backend/internal/domain/shared"
)

// Supplier is a reference entity resolved from the feed's supplier code
// through the configured code-to-name table.
type Supplier struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Code string `gorm:"type:varchar(20);index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, slug, code string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Supplier slug cannot be empty")
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
		Code:       code,
	}, nil
}
