package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateRequest       = "CREATE_REQUEST"
	ActionUpdateRequest       = "UPDATE_REQUEST"
	ActionDeleteRequest       = "DELETE_REQUEST"
	ActionUpdateRequestStatus = "UPDATE_REQUEST_STATUS"
	ActionCreateOrder         = "CREATE_ORDER"
	ActionUpdateOrderStatus   = "UPDATE_ORDER_STATUS"
	ActionCreateInvoice       = "CREATE_INVOICE"
	ActionUpdateInvoiceStatus = "UPDATE_INVOICE_STATUS"
	ActionUpdateInvoiceAmount = "UPDATE_INVOICE_AMOUNT"
)

// AuditLog tracks Who, What, and When for changes to the booking workflow
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil when no user is attributable
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
