package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CounterParty is an external business partner orders are placed with
type CounterParty struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	ContactInfo string         `gorm:"type:text" json:"contact_info"`
	Orders      []Order        `gorm:"foreignKey:CounterPartyID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
