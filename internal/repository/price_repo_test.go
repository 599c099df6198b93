package repository

import (
	"context"
	"testing"
	"time"

	"oilbooking/internal/database"
	"oilbooking/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) *model.Product {
	t.Helper()
	product := &model.Product{
		ID:   uuid.New(),
		Name: "Brent Crude",
		UOM:  "Barrel",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func addPrice(t *testing.T, db *gorm.DB, productID uuid.UUID, price string, effectiveFrom time.Time, expiresAt *time.Time, createdAt time.Time) *model.PriceMaster {
	t.Helper()
	row := &model.PriceMaster{
		ID:            uuid.New(),
		ProductID:     productID,
		Price:         decimal.RequireFromString(price),
		EffectiveFrom: effectiveFrom,
		ExpiresAt:     expiresAt,
		CreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestFindEffectivePicksLatestEffectiveFrom(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)

	now := time.Now()
	addPrice(t, db, product.ID, "70.00", now.Add(-72*time.Hour), nil, now.Add(-72*time.Hour))
	want := addPrice(t, db, product.ID, "75.50", now.Add(-24*time.Hour), nil, now.Add(-24*time.Hour))

	got, err := repo.FindEffective(context.Background(), product.ID, now)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.True(t, got.Price.Equal(decimal.RequireFromString("75.50")))
}

func TestFindEffectiveIgnoresFuturePrices(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)

	now := time.Now()
	want := addPrice(t, db, product.ID, "70.00", now.Add(-24*time.Hour), nil, now.Add(-24*time.Hour))
	addPrice(t, db, product.ID, "99.99", now.Add(24*time.Hour), nil, now)

	got, err := repo.FindEffective(context.Background(), product.ID, now)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
}

func TestFindEffectiveIgnoresExpiredPrices(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)

	now := time.Now()
	expired := now.Add(-48 * time.Hour)
	addPrice(t, db, product.ID, "80.00", now.Add(-96*time.Hour), &expired, now.Add(-96*time.Hour))
	want := addPrice(t, db, product.ID, "75.50", now.Add(-120*time.Hour), nil, now.Add(-120*time.Hour))

	got, err := repo.FindEffective(context.Background(), product.ID, now)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
}

func TestFindEffectiveTieBreaksOnNewestEntry(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)

	now := time.Now()
	effective := now.Add(-24 * time.Hour)
	addPrice(t, db, product.ID, "74.00", effective, nil, now.Add(-2*time.Hour))
	want := addPrice(t, db, product.ID, "76.00", effective, nil, now.Add(-1*time.Hour))

	got, err := repo.FindEffective(context.Background(), product.ID, now)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
}

func TestFindEffectiveNoPriceReturnsRecordNotFound(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)

	_, err := repo.FindEffective(context.Background(), product.ID, time.Now())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindEffectiveScopedToProduct(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPriceRepository(db)
	product := seedProduct(t, db)
	other := seedProduct(t, db)

	now := time.Now()
	addPrice(t, db, other.ID, "12.34", now.Add(-24*time.Hour), nil, now.Add(-24*time.Hour))

	_, err := repo.FindEffective(context.Background(), product.ID, now)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
