package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryAdjustment is the audit record of one stock movement. Movements
// caused by a sale or a received supplier order reference their origin.
type InventoryAdjustment struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ProductID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	Type            enum.AdjustmentType `gorm:"size:20;not null" json:"type"`
	Quantity        decimal.Decimal     `gorm:"type:decimal(12,3);not null" json:"quantity"`
	PreviousStock   decimal.Decimal     `gorm:"type:decimal(12,3);not null" json:"previous_stock"`
	NewStock        decimal.Decimal     `gorm:"type:decimal(12,3);not null" json:"new_stock"`
	Reason          string              `gorm:"size:255;not null" json:"reason"`
	SaleID          *uuid.UUID          `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	SupplierOrderID *uuid.UUID          `gorm:"type:uuid;index" json:"supplier_order_id,omitempty"`
	AdjustedByID    uuid.UUID           `gorm:"type:uuid;not null" json:"adjusted_by_id"`
	AdjustedAt      time.Time           `gorm:"not null;index" json:"adjusted_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new adjustment
func (a *InventoryAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryAdjustment model
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}
