package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is an operating cost paid in Bs and valued in USD at the rate in
// force on its date.
type Expense struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Category      enum.ExpenseCategory `gorm:"size:30;not null;index" json:"category"`
	Description   string               `gorm:"size:255;not null" json:"description"`
	AmountBs      decimal.Decimal      `gorm:"type:decimal(14,2);not null" json:"amount_bs"`
	RateUsed      decimal.Decimal      `gorm:"type:decimal(12,4);not null" json:"rate_used"`
	AmountUSD     decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"amount_usd"`
	Date          time.Time            `gorm:"type:date;not null;index" json:"date"`
	ReceiptNumber *string              `gorm:"size:100" json:"receipt_number,omitempty"`
	Notes         *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID   uuid.UUID            `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
