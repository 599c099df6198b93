package service

import (
	"context"

	"oilbooking/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryResponse feeds the dashboard header cards
type SummaryResponse struct {
	PendingRequests int64  `json:"pending_requests"`
	OrderedRequests int64  `json:"ordered_requests"`
	PlacedOrders    int64  `json:"placed_orders"`
	DraftInvoices   int64  `json:"draft_invoices"`
	TotalInvoiced   string `json:"total_invoiced"`
}

type StatisticsService interface {
	GetSummary(ctx context.Context) (SummaryResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

func (s *statisticsService) GetSummary(ctx context.Context) (SummaryResponse, error) {
	var resp SummaryResponse

	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Request{}).Where("status = ?", model.RequestStatusPending).Count(&resp.PendingRequests).Error; err != nil {
		return SummaryResponse{}, err
	}
	if err := db.Model(&model.Request{}).Where("status = ?", model.RequestStatusOrdered).Count(&resp.OrderedRequests).Error; err != nil {
		return SummaryResponse{}, err
	}
	if err := db.Model(&model.Order{}).Where("status = ?", model.OrderStatusPlaced).Count(&resp.PlacedOrders).Error; err != nil {
		return SummaryResponse{}, err
	}
	if err := db.Model(&model.Invoice{}).Where("status = ?", model.InvoiceStatusDraft).Count(&resp.DraftInvoices).Error; err != nil {
		return SummaryResponse{}, err
	}

	// Sum everything not cancelled
	var total struct {
		Value decimal.Decimal
	}
	if err := db.Model(&model.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0) as value").
		Where("status <> ?", model.InvoiceStatusCancelled).
		Scan(&total).Error; err != nil {
		return SummaryResponse{}, err
	}
	resp.TotalInvoiced = total.Value.StringFixed(2)

	return resp, nil
}
