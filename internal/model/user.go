package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a trader or back-office user submitting product requests
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"` // free text: Trader, Manager, ...
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Requests  []Request `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
