package repository

import (
	"context"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	Update(ctx context.Context, request *model.Request) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Request, error)
	List(ctx context.Context, page, limit int, status string) ([]model.Request, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	IsLinkedToOrder(ctx context.Context, id uuid.UUID) (bool, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	return GetDB(ctx, r.db).Create(request).Error
}

func (r *requestRepository) Update(ctx context.Context, request *model.Request) error {
	return GetDB(ctx, r.db).Save(request).Error
}

func (r *requestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Request{}).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var request model.Request
	if err := GetDB(ctx, r.db).
		Preload("User").
		Preload("Product").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Request, error) {
	var requests []model.Request
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) List(ctx context.Context, page, limit int, status string) ([]model.Request, int64, error) {
	var requests []model.Request
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Request{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("User").
		Preload("Product").
		Order("request_date desc").
		Offset(offset).Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateStatus overwrites the status string unconditionally and reports how
// many rows matched, so callers can distinguish a missing request.
func (r *requestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Request{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// IsLinkedToOrder reports whether an order_requests row references the request
func (r *requestRepository) IsLinkedToOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.OrderRequest{}).Where("request_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
