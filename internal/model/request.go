package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Documented Request status values. The status endpoints accept any string;
// these are what the dashboard writes.
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
	RequestStatusOrdered  = "Ordered"
)

// Request is a user's ask for a quantity of product. Price is snapshotted
// from the price master at create/update time, never taken from the caller.
type Request struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"quantity"`
	UOM         string          `gorm:"type:varchar(20);not null" json:"uom"` // copied from the form, may differ from the product's
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	RequestDate time.Time       `gorm:"not null" json:"request_date"`
	Notes       string          `gorm:"type:text" json:"notes"`
	Status      string          `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
