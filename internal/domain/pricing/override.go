package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/shared"
)

// OverrideType discriminates how an override computes the price
type OverrideType string

const (
	// OverrideTypeFixed replaces the catalog price with the stored value
	OverrideTypeFixed OverrideType = "FIXED"
	// OverrideTypePercentage applies the stored value as a discount
	// percentage on the catalog price (10 means 10% off)
	OverrideTypePercentage OverrideType = "PERCENTAGE"
)

// IsValid checks if the override type is valid
func (t OverrideType) IsValid() bool {
	return t == OverrideTypeFixed || t == OverrideTypePercentage
}

// PriceOverride is a customer-specific pricing rule scoped to exactly
// one (customer, variant) pair, optionally bounded by a validity window.
type PriceOverride struct {
	shared.BaseEntity
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_override_customer_variant,priority:1"`
	VariantID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_override_customer_variant,priority:2"`
	Type       OverrideType    `gorm:"type:varchar(20);not null"`
	Value      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StartDate  *time.Time
	EndDate    *time.Time
}

// TableName returns the table name for GORM
func (PriceOverride) TableName() string {
	return "price_overrides"
}

// NewPriceOverride creates a new price override
func NewPriceOverride(customerID, variantID uuid.UUID, overrideType OverrideType, value decimal.Decimal, startDate, endDate *time.Time) (*PriceOverride, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Override customer is required")
	}
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Override variant is required")
	}
	if !overrideType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Override type must be FIXED or PERCENTAGE")
	}
	if err := validateValue(overrideType, value); err != nil {
		return nil, err
	}
	if err := validateWindow(startDate, endDate); err != nil {
		return nil, err
	}

	return &PriceOverride{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		VariantID:  variantID,
		Type:       overrideType,
		Value:      value,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// Update replaces the override's rule while keeping its (customer,
// variant) scope.
func (o *PriceOverride) Update(overrideType OverrideType, value decimal.Decimal, startDate, endDate *time.Time) error {
	if !overrideType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Override type must be FIXED or PERCENTAGE")
	}
	if err := validateValue(overrideType, value); err != nil {
		return err
	}
	if err := validateWindow(startDate, endDate); err != nil {
		return err
	}

	o.Type = overrideType
	o.Value = value
	o.StartDate = startDate
	o.EndDate = endDate
	o.Touch()

	return nil
}

// IsActiveAt reports whether the override's validity window includes the
// given instant. A missing bound is open-ended on that side.
func (o *PriceOverride) IsActiveAt(t time.Time) bool {
	if o.StartDate != nil && t.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && t.After(*o.EndDate) {
		return false
	}
	return true
}

// Apply computes the effective price for the given catalog price.
// FIXED returns the stored value verbatim; PERCENTAGE treats the value
// as a discount percentage.
func (o *PriceOverride) Apply(catalogPrice decimal.Decimal) decimal.Decimal {
	switch o.Type {
	case OverrideTypeFixed:
		return o.Value
	case OverrideTypePercentage:
		factor := decimal.NewFromInt(1).Sub(o.Value.Div(decimal.NewFromInt(100)))
		return catalogPrice.Mul(factor).Round(2)
	default:
		return catalogPrice
	}
}

func validateValue(overrideType OverrideType, value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Override value cannot be negative")
	}
	if overrideType == OverrideTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VALUE", "Percentage discount cannot exceed 100")
	}
	return nil
}

func validateWindow(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return shared.NewDomainError("INVALID_WINDOW", "Override start date must not be after end date")
	}
	return nil
}
