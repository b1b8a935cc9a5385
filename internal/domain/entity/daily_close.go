package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyClose is the end-of-day summary. At most one exists per date.
type DailyClose struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date             time.Time       `gorm:"type:date;uniqueIndex;not null" json:"date"`
	SalesCount       int64           `gorm:"not null" json:"sales_count"`
	SalesTotalUSD    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sales_total_usd"`
	SalesTotalBs     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"sales_total_bs"`
	ExpensesTotalUSD decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"expenses_total_usd"`
	ExpensesTotalBs  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"expenses_total_bs"`
	ProfitUSD        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"profit_usd"`
	ProfitBs         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"profit_bs"`
	Notes            *string         `gorm:"type:text" json:"notes,omitempty"`
	ClosedByID       uuid.UUID       `gorm:"type:uuid;not null" json:"closed_by_id"`
	ClosedAt         time.Time       `gorm:"not null" json:"closed_at"`
}

// BeforeCreate generates a UUID before creating a new daily close
func (d *DailyClose) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyClose model
func (DailyClose) TableName() string {
	return "daily_closes"
}
