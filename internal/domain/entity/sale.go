package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is one point-of-sale transaction. RateUsed is the snapshot taken at
// creation and is never recomputed.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string             `gorm:"size:50;uniqueIndex;not null" json:"invoice_no"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CashierID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	RateUsed      decimal.Decimal    `gorm:"type:decimal(12,4);not null" json:"rate_used"`
	TotalUSD      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total_usd"`
	TotalBs       decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"total_bs"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	IsCredit      bool               `gorm:"default:false;index" json:"is_credit"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	Items    []SaleItem      `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Cashier  *User           `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	Credit   *CustomerCredit `gorm:"foreignKey:SaleID" json:"credit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a sale, valued in both currencies at the sale's rate
type SaleItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPriceUSD decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price_usd"`
	UnitPriceBs  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price_bs"`
	LineTotalUSD decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total_usd"`
	LineTotalBs  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total_bs"`
	CreatedAt    time.Time       `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
