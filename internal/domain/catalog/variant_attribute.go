package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/soleneo/backend/internal/domain/shared"
)

// Attribute names produced by the extraction pipeline
const (
	AttrPower    = "puissance"
	AttrCapacity = "capacite"
	AttrPhase    = "phase"
	AttrAmperage = "amperage"
)

// VariantAttribute is a derived fact about a variant (power rating,
// capacity, phase, amperage). The set is fully recomputed and replaced
// on every re-import of the variant, never patched in place, so stale
// or duplicated facts cannot survive a changed designation.
type VariantAttribute struct {
	shared.BaseEntity
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Value     string    `gorm:"type:varchar(100);not null"`
	Unit      string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (VariantAttribute) TableName() string {
	return "variant_attributes"
}

// NewVariantAttribute creates a new variant attribute
func NewVariantAttribute(variantID uuid.UUID, name, value, unit string) (*VariantAttribute, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Attribute must belong to a variant")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if strings.TrimSpace(value) == "" {
		return nil, shared.NewDomainError("INVALID_VALUE", "Attribute value cannot be empty")
	}

	return &VariantAttribute{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variantID,
		Name:       name,
		Value:      value,
		Unit:       unit,
	}, nil
}
