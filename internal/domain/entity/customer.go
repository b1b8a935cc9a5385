package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a buyer who may purchase on credit up to CreditLimitUSD
type Customer struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Phone          *string         `gorm:"size:50" json:"phone,omitempty"`
	Email          *string         `gorm:"size:255" json:"email,omitempty"`
	Address        *string         `gorm:"type:text" json:"address,omitempty"`
	CreditLimitUSD decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_limit_usd"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	IsActive       bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
