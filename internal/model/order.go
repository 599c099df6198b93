package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Documented Order status values (not enforced by the status endpoint)
const (
	OrderStatusPlaced    = "Placed"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Order groups one or more requests placed with a counter-party.
// TotalAmount is the sum of price*quantity over the linked requests at
// placement time; it stays as written even if requests change afterwards.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CounterPartyID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"counter_party_id"`
	CounterParty    *CounterParty   `gorm:"foreignKey:CounterPartyID" json:"counter_party,omitempty"`
	DeliveryAddress string          `gorm:"type:text;not null" json:"delivery_address"`
	PlacedAt        time.Time       `gorm:"not null" json:"placed_at"`
	Status          string          `gorm:"type:varchar(50);not null" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	OrderRequests   []OrderRequest  `gorm:"foreignKey:OrderID" json:"order_requests,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderRequest links an order to one of its requests. The unique index on
// request_id makes "one order per request" a hard constraint: a second order
// attaching the same request fails at insert and rolls the transaction back.
type OrderRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID" json:"-"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"request_id"`
	Request   *Request  `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
