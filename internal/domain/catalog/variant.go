package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/shared"
)

// Variant is one sellable unit owned by exactly one Product. Its global,
// immutable identity is the SKU. Every other field is overwritten on
// each import pass: the feed is the authoritative source of variant
// state, not a merge input.
type Variant struct {
	shared.BaseEntity
	SKU           string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Designation   string     `gorm:"type:varchar(255);not null"`
	Power         *float64   // kW, when extracted
	CapacityValue *float64   // liters or kWh, when extracted
	CapacityUnit  string     `gorm:"type:varchar(10)"`
	SupplierRef   string     `gorm:"type:varchar(100)"`
	SupplierID    *uuid.UUID `gorm:"type:uuid;index"`
	Stock         int        `gorm:"not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active        bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "variants"
}

// NewVariant creates a new variant
func NewVariant(sku string, productID uuid.UUID, designation string) (*Variant, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Variant must belong to a product")
	}
	if strings.TrimSpace(designation) == "" {
		return nil, shared.NewDomainError("INVALID_DESIGNATION", "Variant designation cannot be empty")
	}

	return &Variant{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         strings.ToUpper(sku),
		ProductID:   productID,
		Designation: designation,
	}, nil
}

// ApplyImport overwrites the variant's mutable state from a new import
// pass and recomputes the active flag.
func (v *Variant) ApplyImport(designation string, power, capacityValue *float64, capacityUnit, supplierRef string, supplierID *uuid.UUID, stock int, price decimal.Decimal) error {
	if strings.TrimSpace(designation) == "" {
		return shared.NewDomainError("INVALID_DESIGNATION", "Variant designation cannot be empty")
	}
	if stock < 0 {
		stock = 0
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}

	v.Designation = designation
	v.Power = power
	v.CapacityValue = capacityValue
	v.CapacityUnit = capacityUnit
	v.SupplierRef = supplierRef
	v.SupplierID = supplierID
	v.Stock = stock
	v.Price = price
	v.RefreshActive()
	v.Touch()

	return nil
}

// RefreshActive recomputes the active flag: a variant is sellable when
// it has stock or a positive price; both zero means hidden.
func (v *Variant) RefreshActive() {
	v.Active = v.Stock > 0 || v.Price.IsPositive()
}

// validateSKU validates the variant SKU
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}
