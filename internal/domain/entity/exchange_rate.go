package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExchangeRate is the Bs-per-USD rate in force for one calendar date.
type ExchangeRate struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date         time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date"`
	RateBsPerUSD decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"rate_bs_per_usd"`
	SetByID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"set_by_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	SetBy *User `gorm:"foreignKey:SetByID" json:"set_by,omitempty"`
}

// BeforeCreate generates a UUID before creating a new exchange rate
func (e *ExchangeRate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExchangeRate model
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
