package repository

import (
	"context"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateLink(ctx context.Context, link *model.OrderRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error)
	List(ctx context.Context, page, limit int, status string) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) CreateLink(ctx context.Context, link *model.OrderRequest) error {
	return GetDB(ctx, r.db).Create(link).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Preload("CounterParty").
		Preload("OrderRequests.Request.Product").
		Preload("OrderRequests.Request.User").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, page, limit int, status string) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Order{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("CounterParty").
		Preload("OrderRequests.Request.Product").
		Order("placed_at desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}
