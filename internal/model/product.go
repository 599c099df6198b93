package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a tradeable commodity (crude grades, natural gas, refined products)
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	UOM         string         `gorm:"type:varchar(20);not null" json:"uom"` // Barrel, MMBtu, ...
	Requests    []Request      `gorm:"foreignKey:ProductID" json:"-"`
	Prices      []PriceMaster  `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PriceMaster is one entry of a product's time-versioned price history.
// At most one entry should be effective for any instant; overlaps are not
// rejected, the lookup simply takes the latest effective_from.
type PriceMaster struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	EffectiveFrom time.Time       `gorm:"not null;index" json:"effective_from"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
