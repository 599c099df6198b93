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

type CreateOrderRequest struct {
	CounterPartyID  string   `json:"counter_party_id" binding:"required"`
	DeliveryAddress string   `json:"delivery_address" binding:"required"`
	RequestIDs      []string `json:"request_ids" binding:"required,min=1"`
}

type OrderLineResponse struct {
	RequestID   string `json:"request_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    string `json:"quantity"`
	UOM         string `json:"uom"`
	Price       string `json:"price"`
	Status      string `json:"status"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	CounterPartyID   string              `json:"counter_party_id"`
	CounterPartyName string              `json:"counter_party_name,omitempty"`
	DeliveryAddress  string              `json:"delivery_address"`
	PlacedAt         string              `json:"placed_at"`
	Status           string              `json:"status"`
	TotalAmount      string              `json:"total_amount"`
	Requests         []OrderLineResponse `json:"requests,omitempty"`
}

// OrderService aggregates approved requests into orders placed with a
// counter-party. Creation runs in a single transaction: the order row, the
// join rows and the request status flips commit together or not at all.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	GetOrderByID(ctx context.Context, id string) (OrderResponse, error)
	ListOrders(ctx context.Context, page, limit int, status string) ([]OrderResponse, int64, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) error
}

type orderService struct {
	orderRepo        repository.OrderRepository
	requestRepo      repository.RequestRepository
	counterPartyRepo repository.CounterPartyRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	hub              *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	requestRepo repository.RequestRepository,
	counterPartyRepo repository.CounterPartyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		requestRepo:      requestRepo,
		counterPartyRepo: counterPartyRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		hub:              hub,
	}
}

func toOrderResponse(o *model.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		CounterPartyID:  o.CounterPartyID.String(),
		DeliveryAddress: o.DeliveryAddress,
		PlacedAt:        o.PlacedAt.Format(time.RFC3339),
		Status:          o.Status,
		TotalAmount:     o.TotalAmount.StringFixed(2),
	}
	if o.CounterParty != nil {
		resp.CounterPartyName = o.CounterParty.Name
	}
	for _, link := range o.OrderRequests {
		if link.Request == nil {
			continue
		}
		line := OrderLineResponse{
			RequestID: link.RequestID.String(),
			Quantity:  link.Request.Quantity.StringFixed(2),
			UOM:       link.Request.UOM,
			Price:     link.Request.Price.StringFixed(2),
			Status:    link.Request.Status,
		}
		if link.Request.Product != nil {
			line.ProductName = link.Request.Product.Name
		}
		resp.Requests = append(resp.Requests, line)
	}
	return resp
}

// CreateOrder validates the request ids, rejects already-ordered requests
// (listing the offenders), sums price*quantity into the order total, and
// atomically writes the order, its join rows and the status flips.
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (OrderResponse, error) {
	counterPartyID, err := uuid.Parse(req.CounterPartyID)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid counter_party_id: %w", err)
	}

	requestIDs := make([]uuid.UUID, 0, len(req.RequestIDs))
	for _, raw := range req.RequestIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return OrderResponse{}, fmt.Errorf("invalid request id %q: %w", raw, err)
		}
		requestIDs = append(requestIDs, id)
	}

	if _, err := s.counterPartyRepo.FindByID(ctx, counterPartyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, fmt.Errorf("counter-party not found: %w", ErrNotFound)
		}
		return OrderResponse{}, fmt.Errorf("failed to fetch counter-party: %w", err)
	}

	order := &model.Order{
		ID:              uuid.New(),
		CounterPartyID:  counterPartyID,
		DeliveryAddress: req.DeliveryAddress,
		PlacedAt:        time.Now(),
		Status:          model.OrderStatusPlaced,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		requests, err := s.requestRepo.FindByIDs(txCtx, requestIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch requests: %w", err)
		}
		if len(requests) != len(requestIDs) {
			return fmt.Errorf("one or more requests not found: %w", ErrNotFound)
		}

		var alreadyOrdered []string
		for _, r := range requests {
			if r.Status == model.RequestStatusOrdered {
				alreadyOrdered = append(alreadyOrdered, r.ID.String())
			}
		}
		if len(alreadyOrdered) > 0 {
			return fmt.Errorf("request(s) %s already ordered", strings.Join(alreadyOrdered, ", "))
		}

		total := decimal.Zero
		for _, r := range requests {
			total = total.Add(r.Price.Mul(r.Quantity))
		}
		order.TotalAmount = total

		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, r := range requests {
			link := &model.OrderRequest{
				ID:        uuid.New(),
				OrderID:   order.ID,
				RequestID: r.ID,
			}
			// The unique index on request_id fails here when a concurrent
			// order grabbed the same request, rolling everything back.
			if err := s.orderRepo.CreateLink(txCtx, link); err != nil {
				return fmt.Errorf("failed to link request %s: %w", r.ID, err)
			}
			if _, err := s.requestRepo.UpdateStatus(txCtx, r.ID, model.RequestStatusOrdered); err != nil {
				return fmt.Errorf("failed to mark request %s ordered: %w", r.ID, err)
			}
		}

		return s.audit(txCtx, model.ActionCreateOrder, order.ID.String(), req)
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.hub.Publish("order.created", map[string]interface{}{
		"id":           order.ID.String(),
		"status":       order.Status,
		"total_amount": order.TotalAmount.StringFixed(2),
	})

	// Reload with relations for the response
	reloaded, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("failed to reload order: %w", err)
	}
	return toOrderResponse(reloaded), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (OrderResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("invalid order id: %w", ErrNotFound)
	}

	order, err := s.orderRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderResponse{}, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return OrderResponse{}, fmt.Errorf("failed to fetch order: %w", err)
	}
	return toOrderResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, page, limit int, status string) ([]OrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	orders, total, err := s.orderRepo.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res, total, nil
}

// UpdateOrderStatus overwrites the status string unconditionally. Repeating
// the same status is a no-op beyond the timestamp touch.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid order id: %w", ErrNotFound)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rows, err := s.orderRepo.UpdateStatus(txCtx, uid, status)
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return s.audit(txCtx, model.ActionUpdateOrderStatus, uid.String(), map[string]string{"status": status})
	})
	if err != nil {
		return err
	}

	s.hub.Publish("order.status", map[string]interface{}{
		"id":     uid.String(),
		"status": status,
	})
	return nil
}

func (s *orderService) audit(ctx context.Context, action, entityID string, payload interface{}) error {
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
