package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"oilbooking/internal/model"
	"oilbooking/internal/repository"
	ws "oilbooking/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateRequestRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"`
	UOM       string `json:"uom" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateRequestRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"`
	UOM       string `json:"uom" binding:"required"`
	Notes     string `json:"notes"`
}

type RequestResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    string `json:"quantity"`
	UOM         string `json:"uom"`
	Price       string `json:"price"`
	RequestDate string `json:"request_date"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
}

// RequestService implements the request workflow: create with a price
// snapshot, edit, soft-guarded delete, and free-text status updates.
type RequestService interface {
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)
	GetRequestByID(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, page, limit int, status string) ([]RequestResponse, int64, error)
	UpdateRequest(ctx context.Context, id string, req UpdateRequestRequest) (RequestResponse, error)
	DeleteRequest(ctx context.Context, id string) error
	UpdateRequestStatus(ctx context.Context, id string, status string) error
}

type requestService struct {
	requestRepo repository.RequestRepository
	priceRepo   repository.PriceRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	priceRepo repository.PriceRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		priceRepo:   priceRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

func toRequestResponse(r *model.Request) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		ProductID:   r.ProductID.String(),
		Quantity:    r.Quantity.StringFixed(2),
		UOM:         r.UOM,
		Price:       r.Price.StringFixed(2),
		RequestDate: r.RequestDate.Format(time.RFC3339),
		Notes:       r.Notes,
		Status:      r.Status,
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	if r.Product != nil {
		resp.ProductName = r.Product.Name
	}
	return resp
}

// CreateRequest persists a Pending request. The price is snapshotted from the
// price master for "now"; creation hard-fails when no price is effective.
func (s *requestService) CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid user_id: %w", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid product_id: %w", err)
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid quantity: %w", err)
	}
	if !quantity.IsPositive() {
		return RequestResponse{}, fmt.Errorf("quantity must be greater than 0")
	}

	now := time.Now()
	effective, err := s.priceRepo.FindEffective(ctx, productID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, ErrNoPriceFound
		}
		return RequestResponse{}, fmt.Errorf("failed to look up price: %w", err)
	}

	request := &model.Request{
		ID:          uuid.New(),
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		UOM:         req.UOM,
		Price:       effective.Price,
		RequestDate: now,
		Notes:       req.Notes,
		Status:      model.RequestStatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Create(txCtx, request); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return s.audit(txCtx, &userID, model.ActionCreateRequest, request.ID.String(), req)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	s.hub.Publish("request.created", map[string]interface{}{
		"id":     request.ID.String(),
		"status": request.Status,
	})

	return toRequestResponse(request), nil
}

func (s *requestService) GetRequestByID(ctx context.Context, id string) (RequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return toRequestResponse(request), nil
}

func (s *requestService) ListRequests(ctx context.Context, page, limit int, status string) ([]RequestResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	requests, total, err := s.requestRepo.List(ctx, page, limit, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requests: %w", err)
	}

	res := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		res = append(res, toRequestResponse(&requests[i]))
	}
	return res, total, nil
}

// UpdateRequest edits the request fields and re-runs the price lookup for the
// (possibly new) product. Unlike create, a missing price is not an error: the
// prior snapshot stays.
func (s *requestService) UpdateRequest(ctx context.Context, id string, req UpdateRequestRequest) (RequestResponse, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid product_id: %w", err)
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid quantity: %w", err)
	}
	if !quantity.IsPositive() {
		return RequestResponse{}, fmt.Errorf("quantity must be greater than 0")
	}

	request.ProductID = productID
	request.Quantity = quantity
	request.UOM = req.UOM
	request.Notes = req.Notes

	if effective, err := s.priceRepo.FindEffective(ctx, productID, time.Now()); err == nil {
		request.Price = effective.Price
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RequestResponse{}, fmt.Errorf("failed to look up price: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		return s.audit(txCtx, &request.UserID, model.ActionUpdateRequest, request.ID.String(), req)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

// DeleteRequest removes the request unless it is already consumed by an order
func (s *requestService) DeleteRequest(ctx context.Context, id string) error {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return err
	}

	linked, err := s.requestRepo.IsLinkedToOrder(ctx, request.ID)
	if err != nil {
		return fmt.Errorf("failed to check order links: %w", err)
	}
	if linked {
		return fmt.Errorf("request %s: %w", request.ID, ErrRequestLinked)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Delete(txCtx, request.ID); err != nil {
			return fmt.Errorf("failed to delete request: %w", err)
		}
		return s.audit(txCtx, &request.UserID, model.ActionDeleteRequest, request.ID.String(), nil)
	})
}

// UpdateRequestStatus overwrites the status string unconditionally; the value
// is not validated against the documented enumeration.
func (s *requestService) UpdateRequestStatus(ctx context.Context, id string, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid request id: %w", ErrNotFound)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rows, err := s.requestRepo.UpdateStatus(txCtx, uid, status)
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("request not found: %w", ErrNotFound)
		}
		return s.audit(txCtx, nil, model.ActionUpdateRequestStatus, uid.String(), map[string]string{"status": status})
	})
	if err != nil {
		return err
	}

	s.hub.Publish("request.status", map[string]interface{}{
		"id":     uid.String(),
		"status": status,
	})
	return nil
}

func (s *requestService) findRequest(ctx context.Context, id string) (*model.Request, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request id: %w", ErrNotFound)
	}

	request, err := s.requestRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("request not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}
	return request, nil
}

func (s *requestService) audit(ctx context.Context, userID *uuid.UUID, action, entityID string, payload interface{}) error {
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		ID:       uuid.New(),
		UserID:   userID,
		Action:   action,
		EntityID: entityID,
		Details:  string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
