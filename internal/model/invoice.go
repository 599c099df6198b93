package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Documented Invoice status values (not enforced by the status endpoint)
const (
	InvoiceStatusDraft     = "Draft"
	InvoiceStatusIssued    = "Issued"
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusCancelled = "Cancelled"
)

// Invoice groups one or more orders. TotalAmount is either the sum of the
// order totals or a manual override supplied at creation / via update-amount.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Status        string          `gorm:"type:varchar(50);not null" json:"status"`
	InvoiceOrders []InvoiceOrder  `gorm:"foreignKey:InvoiceID" json:"invoice_orders,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceOrder links an invoice to one of its orders. The unique index on
// order_id enforces "one invoice per order" at the store, closing the
// concurrent double-invoicing race.
type InvoiceOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Invoice   *Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
