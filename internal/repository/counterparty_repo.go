package repository

import (
	"context"

	"oilbooking/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CounterPartyRepository interface {
	Create(ctx context.Context, cp *model.CounterParty) error
	Update(ctx context.Context, cp *model.CounterParty) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CounterParty, error)
	List(ctx context.Context, page, limit int, search string) ([]model.CounterParty, int64, error)
}

type counterPartyRepository struct {
	db *gorm.DB
}

func NewCounterPartyRepository(db *gorm.DB) CounterPartyRepository {
	return &counterPartyRepository{db: db}
}

func (r *counterPartyRepository) Create(ctx context.Context, cp *model.CounterParty) error {
	return GetDB(ctx, r.db).Create(cp).Error
}

func (r *counterPartyRepository) Update(ctx context.Context, cp *model.CounterParty) error {
	return GetDB(ctx, r.db).Save(cp).Error
}

func (r *counterPartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CounterParty{}).Error
}

func (r *counterPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CounterParty, error) {
	var cp model.CounterParty
	if err := GetDB(ctx, r.db).First(&cp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *counterPartyRepository) List(ctx context.Context, page, limit int, search string) ([]model.CounterParty, int64, error) {
	var parties []model.CounterParty
	var total int64

	db := GetDB(ctx, r.db).Model(&model.CounterParty{})
	if search != "" {
		db = db.Where("name LIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&parties).Error; err != nil {
		return nil, 0, err
	}

	return parties, total, nil
}
