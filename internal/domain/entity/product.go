package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock status values derived from Stock and MinStock.
const (
	StockStatusOut = "out_of_stock"
	StockStatusLow = "low"
	StockStatusOK  = "ok"
)

// Product represents an item on the shelf, priced in USD
type Product struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Barcode          string          `gorm:"size:100;uniqueIndex;not null" json:"barcode"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Description      *string         `gorm:"type:text" json:"description,omitempty"`
	UnitType         enum.UnitType   `gorm:"size:20;not null;default:'unit'" json:"unit_type"`
	PurchasePriceUSD decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"purchase_price_usd"`
	SellingPriceUSD  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"selling_price_usd"`
	Stock            decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock"`
	MinStock         decimal.Decimal `gorm:"type:decimal(12,3);not null;default:5" json:"min_stock"`
	IsBulkPricing    bool            `gorm:"default:false" json:"is_bulk_pricing"`
	BulkMinQuantity  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"bulk_min_quantity"`
	BulkPriceUSD     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"bulk_price_usd"`
	IsActive         bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceUSDForQuantity returns the unit price that applies to a line of the
// given quantity. The bulk price wins once quantity reaches the bulk minimum.
func (p *Product) PriceUSDForQuantity(quantity decimal.Decimal) decimal.Decimal {
	if p.IsBulkPricing &&
		p.BulkMinQuantity.IsPositive() &&
		p.BulkPriceUSD.IsPositive() &&
		quantity.GreaterThanOrEqual(p.BulkMinQuantity) {
		return p.BulkPriceUSD
	}
	return p.SellingPriceUSD
}

// IsLowStock reports whether stock is at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}

// StockStatus classifies the current stock level
func (p *Product) StockStatus() string {
	switch {
	case !p.Stock.IsPositive():
		return StockStatusOut
	case p.IsLowStock():
		return StockStatusLow
	default:
		return StockStatusOK
	}
}

// ProfitMarginPercent is (selling - purchase) / purchase * 100, rounded to 2 places.
func (p *Product) ProfitMarginPercent() decimal.Decimal {
	if !p.PurchasePriceUSD.IsPositive() {
		return decimal.Zero
	}
	return p.SellingPriceUSD.Sub(p.PurchasePriceUSD).
		Div(p.PurchasePriceUSD).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
