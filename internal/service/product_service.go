package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oilbooking/internal/model"
	"oilbooking/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UOM         string `json:"uom" binding:"required"`
}

type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UOM         string `json:"uom" binding:"required"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UOM         string `json:"uom"`
}

type AddPriceRequest struct {
	Price         string `json:"price" binding:"required"`
	EffectiveFrom string `json:"effective_from" binding:"required"` // RFC3339
	ExpiresAt     string `json:"expires_at"`                        // optional RFC3339
}

type PriceResponse struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Price         string  `json:"price"`
	EffectiveFrom string  `json:"effective_from"`
	ExpiresAt     *string `json:"expires_at"`
}

// ProductService covers product CRUD and the price master history
type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	GetProductByID(ctx context.Context, id string) (ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	AddPrice(ctx context.Context, productID string, req AddPriceRequest) (PriceResponse, error)
	ListPrices(ctx context.Context, productID string) ([]PriceResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
}

func NewProductService(productRepo repository.ProductRepository, priceRepo repository.PriceRepository) ProductService {
	return &productService{productRepo: productRepo, priceRepo: priceRepo}
}

func toProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		UOM:         p.UOM,
	}
}

func toPriceResponse(p *model.PriceMaster) PriceResponse {
	resp := PriceResponse{
		ID:            p.ID.String(),
		ProductID:     p.ProductID.String(),
		Price:         p.Price.StringFixed(2),
		EffectiveFrom: p.EffectiveFrom.Format(time.RFC3339),
	}
	if p.ExpiresAt != nil {
		s := p.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	return resp
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	product := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UOM:         req.UOM,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, page, limit int, search string) ([]ProductResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	products, total, err := s.productRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	return res, total, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (ProductResponse, error) {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.UOM = req.UOM

	if err := s.productRepo.Update(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to update product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// AddPrice appends an entry to the product's price history. Overlapping
// effective windows are accepted; the lookup resolves them by latest
// effective_from.
func (s *productService) AddPrice(ctx context.Context, productID string, req AddPriceRequest) (PriceResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return PriceResponse{}, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return PriceResponse{}, fmt.Errorf("invalid price: %w", err)
	}

	effectiveFrom, err := time.Parse(time.RFC3339, req.EffectiveFrom)
	if err != nil {
		return PriceResponse{}, fmt.Errorf("invalid effective_from: %w", err)
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return PriceResponse{}, fmt.Errorf("invalid expires_at: %w", err)
		}
		if parsed.Before(effectiveFrom) {
			return PriceResponse{}, fmt.Errorf("expires_at must not be before effective_from")
		}
		expiresAt = &parsed
	}

	entry := &model.PriceMaster{
		ID:            uuid.New(),
		ProductID:     product.ID,
		Price:         price,
		EffectiveFrom: effectiveFrom,
		ExpiresAt:     expiresAt,
	}

	if err := s.priceRepo.Create(ctx, entry); err != nil {
		return PriceResponse{}, fmt.Errorf("failed to create price entry: %w", err)
	}

	return toPriceResponse(entry), nil
}

func (s *productService) ListPrices(ctx context.Context, productID string) ([]PriceResponse, error) {
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	prices, err := s.priceRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	res := make([]PriceResponse, 0, len(prices))
	for i := range prices {
		res = append(res, toPriceResponse(&prices[i]))
	}
	return res, nil
}

func (s *productService) findProduct(ctx context.Context, id string) (*model.Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", ErrNotFound)
	}

	product, err := s.productRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}
