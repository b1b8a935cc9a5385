package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplierOrder is a purchase from a supplier, valued at the rate in force
// when it was placed. Stock moves only when the order is received.
type SupplierOrder struct {
	ID          uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo     string                   `gorm:"size:50;uniqueIndex;not null" json:"order_no"`
	SupplierID  uuid.UUID                `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Status      enum.SupplierOrderStatus `gorm:"default:0;index" json:"status"`
	RateUsed    decimal.Decimal          `gorm:"type:decimal(12,4);not null" json:"rate_used"`
	TotalUSD    decimal.Decimal          `gorm:"type:decimal(12,2);not null" json:"total_usd"`
	TotalBs     decimal.Decimal          `gorm:"type:decimal(14,2);not null" json:"total_bs"`
	Paid        bool                     `gorm:"default:false" json:"paid"`
	Notes       *string                  `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID uuid.UUID                `gorm:"type:uuid;not null" json:"created_by_id"`
	ReceivedAt  *time.Time               `json:"received_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`

	Items    []SupplierOrderItem `gorm:"foreignKey:SupplierOrderID" json:"items,omitempty"`
	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier order
func (o *SupplierOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierOrder model
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

// SupplierOrderItem is one product line of a supplier order
type SupplierOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SupplierOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitCostUSD     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost_usd"`
	UnitCostBs      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_cost_bs"`
	LineTotalUSD    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total_usd"`
	LineTotalBs     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"line_total_bs"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier order item
func (i *SupplierOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierOrderItem model
func (SupplierOrderItem) TableName() string {
	return "supplier_order_items"
}
