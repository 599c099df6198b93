package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"oilbooking/internal/model"
	"oilbooking/internal/repository"
	ws "oilbooking/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	OrderIDs    []string `json:"order_ids" binding:"required,min=1"`
	TotalAmount string   `json:"total_amount"` // optional manual override
}

type InvoiceOrderLine struct {
	OrderID          string `json:"order_id"`
	CounterPartyName string `json:"counter_party_name,omitempty"`
	TotalAmount      string `json:"total_amount"`
	Status           string `json:"status"`
}

type InvoiceResponse struct {
	ID          string             `json:"id"`
	InvoiceDate string             `json:"invoice_date"`
	TotalAmount string             `json:"total_amount"`
	Status      string             `json:"status"`
	Orders      []InvoiceOrderLine `json:"orders,omitempty"`
}

// InvoiceService aggregates orders into invoices. Creation is atomic: the
// invoice row and its join rows commit together, and the unique index on
// invoice_orders.order_id keeps an order from appearing on two invoices.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoiceByID(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, page, limit int, status string) ([]InvoiceResponse, int64, error)
	UpdateInvoiceAmount(ctx context.Context, id string, amount string) error
	UpdateInvoiceStatus(ctx context.Context, id string, status string) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

func toInvoiceResponse(inv *model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceDate: inv.InvoiceDate.Format(time.RFC3339),
		TotalAmount: inv.TotalAmount.StringFixed(2),
		Status:      inv.Status,
	}
	for _, link := range inv.InvoiceOrders {
		if link.Order == nil {
			continue
		}
		line := InvoiceOrderLine{
			OrderID:     link.OrderID.String(),
			TotalAmount: link.Order.TotalAmount.StringFixed(2),
			Status:      link.Order.Status,
		}
		if link.Order.CounterParty != nil {
			line.CounterPartyName = link.Order.CounterParty.Name
		}
		resp.Orders = append(resp.Orders, line)
	}
	return resp
}

// CreateInvoice validates the order ids, rejects orders already invoiced
// (listing the offenders), and defaults the total to the sum of the order
// totals unless the caller supplies an override.
func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error) {
	orderIDs := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid order id %q: %w", raw, err)
		}
		orderIDs = append(orderIDs, id)
	}

	var override *decimal.Decimal
	if req.TotalAmount != "" {
		parsed, err := decimal.NewFromString(req.TotalAmount)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid total_amount: %w", err)
		}
		override = &parsed
	}

	invoice := &model.Invoice{
		ID:          uuid.New(),
		InvoiceDate: time.Now(),
		Status:      model.InvoiceStatusDraft,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		orders, err := s.orderRepo.FindByIDs(txCtx, orderIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch orders: %w", err)
		}
		if len(orders) != len(orderIDs) {
			return fmt.Errorf("one or more orders not found: %w", ErrNotFound)
		}

		invoiced, err := s.invoiceRepo.InvoicedOrderIDs(txCtx, orderIDs)
		if err != nil {
			return fmt.Errorf("failed to check invoiced orders: %w", err)
		}
		if len(invoiced) > 0 {
			ids := make([]string, 0, len(invoiced))
			for _, id := range invoiced {
				ids = append(ids, id.String())
			}
			return fmt.Errorf("order(s) %s already invoiced", strings.Join(ids, ", "))
		}

		if override != nil {
			invoice.TotalAmount = *override
		} else {
			total := decimal.Zero
			for _, o := range orders {
				total = total.Add(o.TotalAmount)
			}
			invoice.TotalAmount = total
		}

		if err := s.invoiceRepo.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for _, id := range orderIDs {
			link := &model.InvoiceOrder{
				ID:        uuid.New(),
				InvoiceID: invoice.ID,
				OrderID:   id,
			}
			if err := s.invoiceRepo.CreateLink(txCtx, link); err != nil {
				return fmt.Errorf("failed to link order %s: %w", id, err)
			}
		}

		return s.audit(txCtx, model.ActionCreateInvoice, invoice.ID.String(), req)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.hub.Publish("invoice.created", map[string]interface{}{
		"id":           invoice.ID.String(),
		"status":       invoice.Status,
		"total_amount": invoice.TotalAmount.StringFixed(2),
	})

	reloaded, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(reloaded), nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, id string) (InvoiceResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", ErrNotFound)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InvoiceResponse{}, fmt.Errorf("invoice not found: %w", ErrNotFound)
		}
		return InvoiceResponse{}, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, page, limit int, status string) ([]InvoiceResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	invoices, total, err := s.invoiceRepo.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	res := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		res = append(res, toInvoiceResponse(&invoices[i]))
	}
	return res, total, nil
}

// UpdateInvoiceAmount overwrites the total unconditionally, replacing the
// derived sum with the caller's figure
func (s *invoiceService) UpdateInvoiceAmount(ctx context.Context, id string, amount string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", ErrNotFound)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, err := s.invoiceRepo.FindByID(txCtx, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("invoice not found: %w", ErrNotFound)
			}
			return fmt.Errorf("failed to fetch invoice: %w", err)
		}

		invoice.TotalAmount = parsed
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return s.audit(txCtx, model.ActionUpdateInvoiceAmount, uid.String(), map[string]string{"amount": parsed.StringFixed(2)})
	})
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", ErrNotFound)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rows, err := s.invoiceRepo.UpdateStatus(txCtx, uid, status)
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("invoice not found: %w", ErrNotFound)
		}
		return s.audit(txCtx, model.ActionUpdateInvoiceStatus, uid.String(), map[string]string{"status": status})
	})
	if err != nil {
		return err
	}

	s.hub.Publish("invoice.status", map[string]interface{}{
		"id":     uid.String(),
		"status": status,
	})
	return nil
}

func (s *invoiceService) audit(ctx context.Context, action, entityID string, payload interface{}) error {
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		ID:       uuid.New(),
		Action:   action,
		EntityID: entityID,
		Details:  string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
