package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Dates in request bodies use the YYYY-MM-DD layout.

// SetRateRequest sets the Bs per USD rate for a date (today when omitted)
type SetRateRequest struct {
	Date         *string         `json:"date"`
	RateBsPerUSD decimal.Decimal `json:"rate_bs_per_usd"`
}

// SaleItemRequest is one line of a sale
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest represents a checkout
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	PaymentMethod enum.PaymentMethod `json:"payment_method" binding:"required"`
	IsCredit      bool               `json:"is_credit"`
	Notes         *string            `json:"notes"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	CustomerID string `form:"customer_id"`
	IsCredit   *bool  `form:"is_credit"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// RecordPaymentRequest represents a payment in bolivares against a credit
type RecordPaymentRequest struct {
	AmountBs      decimal.Decimal    `json:"amount_bs"`
	PaymentMethod enum.PaymentMethod `json:"payment_method" binding:"required"`
	Reference     *string            `json:"reference" binding:"omitempty,max=255"`
	Notes         *string            `json:"notes"`
}

// CreditFilterRequest represents credit filter parameters
type CreditFilterRequest struct {
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// SupplierOrderItemRequest is one line of a supplier order
type SupplierOrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCostUSD decimal.Decimal `json:"unit_cost_usd"`
}

// CreateSupplierOrderRequest represents a purchase order to a supplier
type CreateSupplierOrderRequest struct {
	SupplierID uuid.UUID                  `json:"supplier_id" binding:"required"`
	Notes      *string                    `json:"notes"`
	Items      []SupplierOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveSupplierOrderRequest marks an order received
type ReceiveSupplierOrderRequest struct {
	UpdatePrices bool `json:"update_prices"`
}

// SupplierOrderFilterRequest represents supplier order filter parameters
type SupplierOrderFilterRequest struct {
	SupplierID string `form:"supplier_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateExpenseRequest represents an operating expense paid in bolivares
type CreateExpenseRequest struct {
	Category      enum.ExpenseCategory `json:"category" binding:"required"`
	Description   string               `json:"description" binding:"required,max=255"`
	AmountBs      decimal.Decimal      `json:"amount_bs"`
	Date          *string              `json:"date"`
	ReceiptNumber *string              `json:"receipt_number" binding:"omitempty,max=100"`
	Notes         *string              `json:"notes"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// CloseDayRequest closes a business date (today when omitted)
type CloseDayRequest struct {
	Date  *string `json:"date"`
	Notes *string `json:"notes"`
}
