package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request. Prices are USD.
type CreateProductRequest struct {
	CategoryID       *uuid.UUID       `json:"category_id"`
	Barcode          string           `json:"barcode" binding:"omitempty,max=100"`
	Name             string           `json:"name" binding:"required,min=2,max=255"`
	Description      *string          `json:"description"`
	UnitType         enum.UnitType    `json:"unit_type"`
	PurchasePriceUSD decimal.Decimal  `json:"purchase_price_usd"`
	SellingPriceUSD  decimal.Decimal  `json:"selling_price_usd"`
	Stock            decimal.Decimal  `json:"stock"`
	MinStock         *decimal.Decimal `json:"min_stock"`
	IsBulkPricing    bool             `json:"is_bulk_pricing"`
	BulkMinQuantity  decimal.Decimal  `json:"bulk_min_quantity"`
	BulkPriceUSD     decimal.Decimal  `json:"bulk_price_usd"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID       *uuid.UUID       `json:"category_id"`
	Barcode          *string          `json:"barcode" binding:"omitempty,min=1,max=100"`
	Name             *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description      *string          `json:"description"`
	UnitType         *enum.UnitType   `json:"unit_type"`
	PurchasePriceUSD *decimal.Decimal `json:"purchase_price_usd"`
	SellingPriceUSD  *decimal.Decimal `json:"selling_price_usd"`
	MinStock         *decimal.Decimal `json:"min_stock"`
	IsBulkPricing    *bool            `json:"is_bulk_pricing"`
	BulkMinQuantity  *decimal.Decimal `json:"bulk_min_quantity"`
	BulkPriceUSD     *decimal.Decimal `json:"bulk_price_usd"`
	IsActive         *bool            `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search          string `form:"search"`
	CategoryID      string `form:"category_id"`
	LowStock        bool   `form:"low_stock"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}

// AdjustStockRequest represents a manual stock movement
type AdjustStockRequest struct {
	Type     enum.AdjustmentType `json:"type" binding:"required"`
	Quantity decimal.Decimal     `json:"quantity"`
	Reason   string              `json:"reason" binding:"required,max=255"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description"`
}
