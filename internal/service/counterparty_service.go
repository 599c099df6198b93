package service

import (
	"context"
	"errors"
	"fmt"

	"oilbooking/internal/model"
	"oilbooking/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCounterPartyRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
}

type UpdateCounterPartyRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
}

type CounterPartyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

type CounterPartyService interface {
	CreateCounterParty(ctx context.Context, req CreateCounterPartyRequest) (CounterPartyResponse, error)
	GetCounterPartyByID(ctx context.Context, id string) (CounterPartyResponse, error)
	ListCounterParties(ctx context.Context, page, limit int, search string) ([]CounterPartyResponse, int64, error)
	UpdateCounterParty(ctx context.Context, id string, req UpdateCounterPartyRequest) (CounterPartyResponse, error)
	DeleteCounterParty(ctx context.Context, id string) error
}

type counterPartyService struct {
	counterPartyRepo repository.CounterPartyRepository
}

func NewCounterPartyService(counterPartyRepo repository.CounterPartyRepository) CounterPartyService {
	return &counterPartyService{counterPartyRepo: counterPartyRepo}
}

func toCounterPartyResponse(cp *model.CounterParty) CounterPartyResponse {
	return CounterPartyResponse{
		ID:          cp.ID.String(),
		Name:        cp.Name,
		ContactInfo: cp.ContactInfo,
	}
}

func (s *counterPartyService) CreateCounterParty(ctx context.Context, req CreateCounterPartyRequest) (CounterPartyResponse, error) {
	cp := &model.CounterParty{
		ID:          uuid.New(),
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	}

	if err := s.counterPartyRepo.Create(ctx, cp); err != nil {
		return CounterPartyResponse{}, fmt.Errorf("failed to create counter-party: %w", err)
	}

	return toCounterPartyResponse(cp), nil
}

func (s *counterPartyService) GetCounterPartyByID(ctx context.Context, id string) (CounterPartyResponse, error) {
	cp, err := s.findCounterParty(ctx, id)
	if err != nil {
		return CounterPartyResponse{}, err
	}
	return toCounterPartyResponse(cp), nil
}

func (s *counterPartyService) ListCounterParties(ctx context.Context, page, limit int, search string) ([]CounterPartyResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	parties, total, err := s.counterPartyRepo.List(ctx, page, limit, search)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch counter-parties: %w", err)
	}

	res := make([]CounterPartyResponse, 0, len(parties))
	for i := range parties {
		res = append(res, toCounterPartyResponse(&parties[i]))
	}
	return res, total, nil
}

func (s *counterPartyService) UpdateCounterParty(ctx context.Context, id string, req UpdateCounterPartyRequest) (CounterPartyResponse, error) {
	cp, err := s.findCounterParty(ctx, id)
	if err != nil {
		return CounterPartyResponse{}, err
	}

	cp.Name = req.Name
	cp.ContactInfo = req.ContactInfo

	if err := s.counterPartyRepo.Update(ctx, cp); err != nil {
		return CounterPartyResponse{}, fmt.Errorf("failed to update counter-party: %w", err)
	}

	return toCounterPartyResponse(cp), nil
}

func (s *counterPartyService) DeleteCounterParty(ctx context.Context, id string) error {
	cp, err := s.findCounterParty(ctx, id)
	if err != nil {
		return err
	}
	return s.counterPartyRepo.Delete(ctx, cp.ID)
}

func (s *counterPartyService) findCounterParty(ctx context.Context, id string) (*model.CounterParty, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid counter-party id: %w", ErrNotFound)
	}

	cp, err := s.counterPartyRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("counter-party not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch counter-party: %w", err)
	}
	return cp, nil
}
