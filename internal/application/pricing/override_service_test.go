package pricingapp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOverrideService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates override when none exists", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(nil, shared.ErrNotFound)
		overrideRepo.On("Save", ctx, mock.AnythingOfType("*pricing.PriceOverride")).Return(nil)

		created, err := service.Upsert(ctx, UpsertOverrideRequest{
			CustomerID: customerID,
			VariantID:  variant.ID,
			Type:       pricing.OverrideTypeFixed,
			Value:      decimal.RequireFromString("99.90"),
		})
		require.NoError(t, err)
		assert.Equal(t, pricing.OverrideTypeFixed, created.Type)
		overrideRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("replaces the rule when override exists", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")
		existing := makeOverride(t, customerID, variant.ID, pricing.OverrideTypeFixed, "99.90", nil, nil)

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(existing, nil)
		overrideRepo.On("Save", ctx, existing).Return(nil)

		updated, err := service.Upsert(ctx, UpsertOverrideRequest{
			CustomerID: customerID,
			VariantID:  variant.ID,
			Type:       pricing.OverrideTypePercentage,
			Value:      decimal.RequireFromString("15"),
		})
		require.NoError(t, err)
		assert.Equal(t, pricing.OverrideTypePercentage, updated.Type)
		assert.Equal(t, existing.ID, updated.ID)
	})

	t.Run("rejects percentage above one hundred", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(nil, shared.ErrNotFound)

		_, err := service.Upsert(ctx, UpsertOverrideRequest{
			CustomerID: customerID,
			VariantID:  variant.ID,
			Type:       pricing.OverrideTypePercentage,
			Value:      decimal.RequireFromString("150"),
		})
		require.Error(t, err)
		overrideRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects override on unknown variant", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		variantID := uuid.New()
		variantRepo.On("FindByID", ctx, variantID).Return(nil, shared.ErrNotFound)

		_, err := service.Upsert(ctx, UpsertOverrideRequest{
			CustomerID: uuid.New(),
			VariantID:  variantID,
			Type:       pricing.OverrideTypeFixed,
			Value:      decimal.RequireFromString("10"),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOverrideService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing override", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		customerID := uuid.New()
		variantID := uuid.New()
		overrideRepo.On("Delete", ctx, customerID, variantID).Return(nil)

		assert.NoError(t, service.Delete(ctx, customerID, variantID))
	})

	t.Run("propagates not found", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewOverrideService(overrideRepo, variantRepo, nil)

		customerID := uuid.New()
		variantID := uuid.New()
		overrideRepo.On("Delete", ctx, customerID, variantID).Return(shared.ErrNotFound)

		assert.ErrorIs(t, service.Delete(ctx, customerID, variantID), shared.ErrNotFound)
	})
}

func TestOverrideService_LockStriping(t *testing.T) {
	service := NewOverrideService(new(MockOverrideRepository), new(MockVariantRepository), nil)

	customerID := uuid.New()
	variantID := uuid.New()

	// The same pair always maps to the same stripe
	first := service.lockFor(customerID, variantID)
	second := service.lockFor(customerID, variantID)
	assert.Same(t, first, second)
}
