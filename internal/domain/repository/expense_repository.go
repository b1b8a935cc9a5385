package repository

import (
	"context"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
	// Summarize totals expenses dated in [from, to].
	Summarize(ctx context.Context, from, to time.Time) (*ExpenseSummary, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Category   *enum.ExpenseCategory
	From       *time.Time
	To         *time.Time
}

// ExpenseSummary is the totals of a set of expenses
type ExpenseSummary struct {
	TotalUSD decimal.Decimal
	TotalBs  decimal.Decimal
}
