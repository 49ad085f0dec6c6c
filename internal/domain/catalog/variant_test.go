package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("valid variant", func(t *testing.T) {
		v, err := NewVariant("sku-001", productID, "Onduleur 5KW")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", v.SKU)
		assert.Equal(t, productID, v.ProductID)
		assert.False(t, v.Active)
	})

	t.Run("empty sku", func(t *testing.T) {
		_, err := NewVariant("", productID, "Onduleur")
		assert.Error(t, err)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := NewVariant("SKU-002", uuid.Nil, "Onduleur")
		assert.Error(t, err)
	})

	t.Run("empty designation", func(t *testing.T) {
		_, err := NewVariant("SKU-003", productID, "  ")
		assert.Error(t, err)
	})
}

func TestVariantActiveFlag(t *testing.T) {
	tests := []struct {
		name   string
		stock  int
		price  string
		active bool
	}{
		{"no stock no price", 0, "0", false},
		{"price only", 0, "50", true},
		{"stock only", 5, "0", true},
		{"stock and price", 3, "10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVariant("SKU-100", uuid.New(), "Onduleur")
			require.NoError(t, err)

			err = v.ApplyImport("Onduleur", nil, nil, "", "", nil, tt.stock, decimal.RequireFromString(tt.price))
			require.NoError(t, err)
			assert.Equal(t, tt.active, v.Active)
		})
	}
}

func TestVariantApplyImportOverwritesState(t *testing.T) {
	v, err := NewVariant("SKU-200", uuid.New(), "Onduleur 5KW")
	require.NoError(t, err)

	power := 5.0
	err = v.ApplyImport("Onduleur 5KW", &power, nil, "", "REF-A", nil, 2, decimal.NewFromInt(100))
	require.NoError(t, err)

	// Second pass with different source data replaces everything.
	newPower := 6.0
	capacity := 200.0
	err = v.ApplyImport("Onduleur 6KW 200L", &newPower, &capacity, "L", "REF-B", nil, 0, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "Onduleur 6KW 200L", v.Designation)
	assert.Equal(t, 6.0, *v.Power)
	assert.Equal(t, 200.0, *v.CapacityValue)
	assert.Equal(t, "L", v.CapacityUnit)
	assert.Equal(t, "REF-B", v.SupplierRef)
	assert.Equal(t, 0, v.Stock)
	assert.False(t, v.Active)
}

func TestVariantApplyImportClampsNegativeStock(t *testing.T) {
	v, err := NewVariant("SKU-300", uuid.New(), "Onduleur")
	require.NoError(t, err)

	err = v.ApplyImport("Onduleur", nil, nil, "", "", nil, -5, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Stock)
}

func TestVariantApplyImportRejectsNegativePrice(t *testing.T) {
	v, err := NewVariant("SKU-400", uuid.New(), "Onduleur")
	require.NoError(t, err)

	err = v.ApplyImport("Onduleur", nil, nil, "", "", nil, 1, decimal.NewFromInt(-1))
	assert.Error(t, err)
}
