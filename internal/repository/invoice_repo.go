package repository

import (
	"context"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	CreateLink(ctx context.Context, link *model.InvoiceOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, page, limit int, status string) ([]model.Invoice, int64, error)
	Update(ctx context.Context, invoice *model.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	InvoicedOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) CreateLink(ctx context.Context, link *model.InvoiceOrder) error {
	return GetDB(ctx, r.db).Create(link).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).
		Preload("InvoiceOrders.Order.CounterParty").
		Preload("InvoiceOrders.Order.OrderRequests.Request.Product").
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, page, limit int, status string) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Invoice{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("InvoiceOrders.Order").
		Order("invoice_date desc").
		Offset(offset).Limit(limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := GetDB(ctx, r.db).Model(&model.Invoice{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// InvoicedOrderIDs returns the subset of orderIDs already linked to an invoice
func (r *invoiceRepository) InvoicedOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).
		Model(&model.InvoiceOrder{}).
		Where("order_id IN ?", orderIDs).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
