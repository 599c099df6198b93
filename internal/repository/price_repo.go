package repository

import (
	"context"
	"time"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceRepository interface {
	Create(ctx context.Context, price *model.PriceMaster) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.PriceMaster, error)
	FindEffective(ctx context.Context, productID uuid.UUID, at time.Time) (*model.PriceMaster, error)
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) Create(ctx context.Context, price *model.PriceMaster) error {
	return GetDB(ctx, r.db).Create(price).Error
}

func (r *priceRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.PriceMaster, error) {
	var prices []model.PriceMaster
	if err := GetDB(ctx, r.db).
		Where("product_id = ?", productID).
		Order("effective_from desc").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindEffective returns the price row applicable to the product at the given
// instant: effective_from <= at, not yet expired, latest effective_from wins.
// Rows sharing the same effective_from fall back to the newest created entry.
// Returns gorm.ErrRecordNotFound when no row is effective.
func (r *priceRepository) FindEffective(ctx context.Context, productID uuid.UUID, at time.Time) (*model.PriceMaster, error) {
	var price model.PriceMaster
	if err := GetDB(ctx, r.db).
		Where("product_id = ?", productID).
		Where("effective_from <= ?", at).
		Where("(expires_at IS NULL OR expires_at >= ?)", at).
		Order("effective_from desc, created_at desc").
		First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}
