package pricingapp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/catalog"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVariantRepository is a mock implementation of catalog.VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Variant, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Variant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOverrideRepository is a mock implementation of pricing.OverrideRepository
type MockOverrideRepository struct {
	mock.Mock
}

func (m *MockOverrideRepository) FindByCustomerAndVariant(ctx context.Context, customerID, variantID uuid.UUID) (*pricing.PriceOverride, error) {
	args := m.Called(ctx, customerID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceOverride), args.Error(1)
}

func (m *MockOverrideRepository) FindByCustomerAndVariants(ctx context.Context, customerID uuid.UUID, variantIDs []uuid.UUID) ([]pricing.PriceOverride, error) {
	args := m.Called(ctx, customerID, variantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.PriceOverride), args.Error(1)
}

func (m *MockOverrideRepository) Save(ctx context.Context, override *pricing.PriceOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockOverrideRepository) Delete(ctx context.Context, customerID, variantID uuid.UUID) error {
	args := m.Called(ctx, customerID, variantID)
	return args.Error(0)
}

func makeVariant(t *testing.T, price string) *catalog.Variant {
	t.Helper()
	variant, err := catalog.NewVariant("HW-SUN-10KTL", uuid.New(), "Onduleur Huawei SUN2000-10KTL")
	require.NoError(t, err)
	variant.Price = decimal.RequireFromString(price)
	variant.RefreshActive()
	return variant
}

func makeOverride(t *testing.T, customerID, variantID uuid.UUID, overrideType pricing.OverrideType, value string, start, end *time.Time) *pricing.PriceOverride {
	t.Helper()
	override, err := pricing.NewPriceOverride(customerID, variantID, overrideType, decimal.RequireFromString(value), start, end)
	require.NoError(t, err)
	return override
}

func TestPriceService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns catalog price without an override", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(nil, shared.ErrNotFound)

		resolved, err := service.Resolve(ctx, customerID, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.00").Equal(resolved.FinalPrice))
		assert.False(t, resolved.OverrideApplied)
	})

	t.Run("anonymous customer never reads overrides", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		variant := makeVariant(t, "150.00")
		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)

		resolved, err := service.Resolve(ctx, uuid.Nil, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.00").Equal(resolved.FinalPrice))
		overrideRepo.AssertNotCalled(t, "FindByCustomerAndVariant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fixed override returns its value verbatim", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")
		override := makeOverride(t, customerID, variant.ID, pricing.OverrideTypeFixed, "99.90", nil, nil)

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(override, nil)

		resolved, err := service.Resolve(ctx, customerID, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("99.90").Equal(resolved.FinalPrice))
		assert.True(t, resolved.OverrideApplied)
		assert.Equal(t, pricing.OverrideTypeFixed, resolved.OverrideType)
	})

	t.Run("percentage override discounts the catalog price", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "100.00")
		override := makeOverride(t, customerID, variant.ID, pricing.OverrideTypePercentage, "10", nil, nil)

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(override, nil)

		resolved, err := service.Resolve(ctx, customerID, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("90").Equal(resolved.FinalPrice))
		assert.True(t, resolved.OverrideApplied)
	})

	t.Run("override outside its window is ignored", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		variant := makeVariant(t, "150.00")
		start := time.Now().Add(24 * time.Hour)
		end := time.Now().Add(48 * time.Hour)
		override := makeOverride(t, customerID, variant.ID, pricing.OverrideTypeFixed, "99.90", &start, &end)

		variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(override, nil)

		resolved, err := service.Resolve(ctx, customerID, variant.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("150.00").Equal(resolved.FinalPrice))
		assert.False(t, resolved.OverrideApplied)
	})

	t.Run("unknown variant propagates not found", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		variantID := uuid.New()
		variantRepo.On("FindByID", ctx, variantID).Return(nil, shared.ErrNotFound)

		_, err := service.Resolve(ctx, uuid.New(), variantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPriceService_ResolveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves each variant like Resolve with exactly two reads", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		plain := makeVariant(t, "150.00")
		discounted := makeVariant(t, "100.00")
		ids := []uuid.UUID{plain.ID, discounted.ID}

		override := makeOverride(t, customerID, discounted.ID, pricing.OverrideTypePercentage, "10", nil, nil)

		variantRepo.On("FindByIDs", ctx, ids).Return([]catalog.Variant{*plain, *discounted}, nil)
		overrideRepo.On("FindByCustomerAndVariants", ctx, customerID, ids).Return([]pricing.PriceOverride{*override}, nil)

		results, err := service.ResolveBatch(ctx, customerID, ids)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, plain.ID, results[0].VariantID)
		assert.True(t, decimal.RequireFromString("150.00").Equal(results[0].FinalPrice))
		assert.False(t, results[0].OverrideApplied)

		assert.Equal(t, discounted.ID, results[1].VariantID)
		assert.True(t, decimal.RequireFromString("90").Equal(results[1].FinalPrice))
		assert.True(t, results[1].OverrideApplied)

		variantRepo.AssertNumberOfCalls(t, "FindByIDs", 1)
		overrideRepo.AssertNumberOfCalls(t, "FindByCustomerAndVariants", 1)
		variantRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		overrideRepo.AssertNotCalled(t, "FindByCustomerAndVariant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous batch reads variants only", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		variant := makeVariant(t, "150.00")
		ids := []uuid.UUID{variant.ID}

		variantRepo.On("FindByIDs", ctx, ids).Return([]catalog.Variant{*variant}, nil)

		results, err := service.ResolveBatch(ctx, uuid.Nil, ids)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].OverrideApplied)
		overrideRepo.AssertNotCalled(t, "FindByCustomerAndVariants", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown variant in the batch propagates not found", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		customerID := uuid.New()
		known := makeVariant(t, "150.00")
		unknown := uuid.New()
		ids := []uuid.UUID{known.ID, unknown}

		variantRepo.On("FindByIDs", ctx, ids).Return([]catalog.Variant{*known}, nil)
		overrideRepo.On("FindByCustomerAndVariants", ctx, customerID, ids).Return([]pricing.PriceOverride{}, nil)

		_, err := service.ResolveBatch(ctx, customerID, ids)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("empty id list resolves to empty result without reads", func(t *testing.T) {
		variantRepo := new(MockVariantRepository)
		overrideRepo := new(MockOverrideRepository)
		service := NewPriceService(variantRepo, overrideRepo, nil)

		results, err := service.ResolveBatch(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
		variantRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}

func TestPriceService_PercentageRounding(t *testing.T) {
	ctx := context.Background()
	variantRepo := new(MockVariantRepository)
	overrideRepo := new(MockOverrideRepository)
	service := NewPriceService(variantRepo, overrideRepo, nil)

	customerID := uuid.New()
	variant := makeVariant(t, "99.99")
	override := makeOverride(t, customerID, variant.ID, pricing.OverrideTypePercentage, "10", nil, nil)

	variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
	overrideRepo.On("FindByCustomerAndVariant", ctx, customerID, variant.ID).Return(override, nil)

	resolved, err := service.Resolve(ctx, customerID, variant.ID)
	require.NoError(t, err)
	// 99.99 * 0.9 = 89.991, rounded to cents
	assert.True(t, decimal.RequireFromString("89.99").Equal(resolved.FinalPrice))
}
