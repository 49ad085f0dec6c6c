package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindBySKU finds a variant by its immutable SKU
func (r *GormVariantRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).Where("sku = ?", strings.ToUpper(sku)).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByIDs returns the variants for the given ids in one read
func (r *GormVariantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Variant, error) {
	if len(ids) == 0 {
		return []catalog.Variant{}, nil
	}
	var variants []catalog.Variant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Save creates or updates a variant
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// Count returns the total number of variants
func (r *GormVariantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Variant{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)

// GormVariantAttributeRepository implements VariantAttributeRepository using GORM
type GormVariantAttributeRepository struct {
	db *gorm.DB
}

// NewGormVariantAttributeRepository creates a new GormVariantAttributeRepository
func NewGormVariantAttributeRepository(db *gorm.DB) *GormVariantAttributeRepository {
	return &GormVariantAttributeRepository{db: db}
}

// FindByVariant returns the attributes of a variant
func (r *GormVariantAttributeRepository) FindByVariant(ctx context.Context, variantID uuid.UUID) ([]catalog.VariantAttribute, error) {
	var attributes []catalog.VariantAttribute
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("name ASC").
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// Replace deletes all attributes of the variant and creates the given
// set in one transaction, so a failed re-import cannot leave a mix of
// old and new facts.
func (r *GormVariantAttributeRepository) Replace(ctx context.Context, variantID uuid.UUID, attributes []*catalog.VariantAttribute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variantID).Delete(&catalog.VariantAttribute{}).Error; err != nil {
			return err
		}
		if len(attributes) == 0 {
			return nil
		}
		return tx.Create(attributes).Error
	})
}

// Ensure GormVariantAttributeRepository implements VariantAttributeRepository
var _ catalog.VariantAttributeRepository = (*GormVariantAttributeRepository)(nil)
