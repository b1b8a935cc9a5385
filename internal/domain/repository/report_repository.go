package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Barcode      string          `json:"barcode"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	RevenueUSD   decimal.Decimal `json:"revenue_usd"`
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       time.Time       `json:"date"`
	SalesCount int64           `json:"sales_count"`
	TotalUSD   decimal.Decimal `json:"total_usd"`
	TotalBs    decimal.Decimal `json:"total_bs"`
}

// ReportRepository defines aggregation queries used by the dashboard
type ReportRepository interface {
	// TopProducts returns the best selling products by USD revenue in [from, to).
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	// DailySales returns per-day sales totals in [from, to).
	DailySales(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
}
