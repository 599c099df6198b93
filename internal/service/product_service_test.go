package service

import (
	"context"
	"testing"
	"time"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddPriceAppendsHistoryEntry(t *testing.T) {
	f := setupFixtures(t)
	svc := NewProductService(f.productRepo, f.priceRepo)

	product := f.seedProduct(t, "Brent Crude", "Barrel")
	f.seedPrice(t, product.ID, "70.00", time.Now().Add(-72*time.Hour))

	effective := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	resp, err := svc.AddPrice(context.Background(), product.ID.String(), AddPriceRequest{
		Price:         "75.50",
		EffectiveFrom: effective.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, "75.50", resp.Price)

	// Prior entries are untouched; the history only grows
	var count int64
	require.NoError(t, f.db.Model(&model.PriceMaster{}).Where("product_id = ?", product.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestAddPriceRejectsExpiryBeforeEffective(t *testing.T) {
	f := setupFixtures(t)
	svc := NewProductService(f.productRepo, f.priceRepo)

	product := f.seedProduct(t, "Brent Crude", "Barrel")

	now := time.Now().UTC().Truncate(time.Second)
	_, err := svc.AddPrice(context.Background(), product.ID.String(), AddPriceRequest{
		Price:         "75.50",
		EffectiveFrom: now.Format(time.RFC3339),
		ExpiresAt:     now.Add(-24 * time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
}

func TestAddPriceMissingProductReturnsNotFound(t *testing.T) {
	f := setupFixtures(t)
	svc := NewProductService(f.productRepo, f.priceRepo)

	_, err := svc.AddPrice(context.Background(), uuid.NewString(), AddPriceRequest{
		Price:         "75.50",
		EffectiveFrom: time.Now().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListPricesNewestEffectiveFirst(t *testing.T) {
	f := setupFixtures(t)
	svc := NewProductService(f.productRepo, f.priceRepo)

	product := f.seedProduct(t, "Brent Crude", "Barrel")
	f.seedPrice(t, product.ID, "70.00", time.Now().Add(-72*time.Hour))
	f.seedPrice(t, product.ID, "75.50", time.Now().Add(-24*time.Hour))

	prices, err := svc.ListPrices(context.Background(), product.ID.String())
	require.NoError(t, err)
	require.Len(t, prices, 2)
	require.Equal(t, "75.50", prices[0].Price)
	require.Equal(t, "70.00", prices[1].Price)
}

func TestDeleteProductHidesItFromLookup(t *testing.T) {
	f := setupFixtures(t)
	svc := NewProductService(f.productRepo, f.priceRepo)

	product := f.seedProduct(t, "Brent Crude", "Barrel")

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID.String()))

	_, err := svc.GetProductByID(context.Background(), product.ID.String())
	require.ErrorIs(t, err, ErrNotFound)
}
