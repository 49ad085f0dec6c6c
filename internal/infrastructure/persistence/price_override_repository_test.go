package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soleneo/backend/internal/domain/pricing"
	"github.com/soleneo/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOverrideTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&pricing.PriceOverride{})
	require.NoError(t, err)

	return db
}

// newMockOverrideRepository creates a GormOverrideRepository with a mocked SQL connection
func newMockOverrideRepository(t *testing.T) (*GormOverrideRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOverrideRepository(gormDB), mock, mockDB
}

func TestGormOverrideRepository_SaveAndFind(t *testing.T) {
	db := setupOverrideTestDB(t)
	repo := NewGormOverrideRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	variantID := uuid.New()

	t.Run("saves and finds by customer and variant", func(t *testing.T) {
		override, err := pricing.NewPriceOverride(customerID, variantID, pricing.OverrideTypeFixed, decimal.NewFromFloat(99.90), nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, override))

		found, err := repo.FindByCustomerAndVariant(ctx, customerID, variantID)
		require.NoError(t, err)
		assert.Equal(t, override.ID, found.ID)
		assert.Equal(t, pricing.OverrideTypeFixed, found.Type)
		assert.True(t, decimal.NewFromFloat(99.90).Equal(found.Value))
	})

	t.Run("returns not found for a pair without override", func(t *testing.T) {
		_, err := repo.FindByCustomerAndVariant(ctx, uuid.New(), variantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds batch overrides in one read", func(t *testing.T) {
		otherVariant := uuid.New()
		override, err := pricing.NewPriceOverride(customerID, otherVariant, pricing.OverrideTypePercentage, decimal.NewFromInt(10), nil, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, override))

		overrides, err := repo.FindByCustomerAndVariants(ctx, customerID, []uuid.UUID{variantID, otherVariant, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, overrides, 2)

		empty, err := repo.FindByCustomerAndVariants(ctx, customerID, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestGormOverrideRepository_Delete(t *testing.T) {
	db := setupOverrideTestDB(t)
	repo := NewGormOverrideRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	variantID := uuid.New()

	override, err := pricing.NewPriceOverride(customerID, variantID, pricing.OverrideTypeFixed, decimal.NewFromInt(50), nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, override))

	t.Run("deletes existing override", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, customerID, variantID))

		_, err := repo.FindByCustomerAndVariant(ctx, customerID, variantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		err := repo.Delete(ctx, customerID, variantID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOverrideRepository_FindByCustomerAndVariant_QueryError(t *testing.T) {
	repo, mock, mockDB := newMockOverrideRepository(t)
	defer mockDB.Close()

	customerID := uuid.New()
	variantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "price_overrides"`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.FindByCustomerAndVariant(context.Background(), customerID, variantID)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
