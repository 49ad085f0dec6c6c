package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOverrideRepository implements OverrideRepository using GORM
type GormOverrideRepository struct {
	db *gorm.DB
}

// NewGormOverrideRepository creates a new GormOverrideRepository
func NewGormOverrideRepository(db *gorm.DB) *GormOverrideRepository {
	return &GormOverrideRepository{db: db}
}

// FindByCustomerAndVariant finds the override scoped to the pair
func (r *GormOverrideRepository) FindByCustomerAndVariant(ctx context.Context, customerID, variantID uuid.UUID) (*pricing.PriceOverride, error) {
	var override pricing.PriceOverride
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND variant_id = ?", customerID, variantID).
		First(&override).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &override, nil
}

// FindByCustomerAndVariants returns all overrides the customer has on
// the given variant ids in one read
func (r *GormOverrideRepository) FindByCustomerAndVariants(ctx context.Context, customerID uuid.UUID, variantIDs []uuid.UUID) ([]pricing.PriceOverride, error) {
	if len(variantIDs) == 0 {
		return []pricing.PriceOverride{}, nil
	}
	var overrides []pricing.PriceOverride
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND variant_id IN ?", customerID, variantIDs).
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// Save creates or updates an override
func (r *GormOverrideRepository) Save(ctx context.Context, override *pricing.PriceOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}

// Delete removes the override scoped to the pair
func (r *GormOverrideRepository) Delete(ctx context.Context, customerID, variantID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND variant_id = ?", customerID, variantID).
		Delete(&pricing.PriceOverride{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOverrideRepository implements OverrideRepository
var _ pricing.OverrideRepository = (*GormOverrideRepository)(nil)
