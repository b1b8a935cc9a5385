package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create stores the sale together with its items.
	Create(ctx context.Context, sale *entity.Sale) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// Summarize aggregates sales created in [from, to).
	Summarize(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	IsCredit   *bool
	From       *time.Time
	To         *time.Time
}

// SalesSummary is the count and totals of a set of sales
type SalesSummary struct {
	Count    int64
	TotalUSD decimal.Decimal
	TotalBs  decimal.Decimal
}
