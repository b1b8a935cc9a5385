package repository

import (
	"context"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return conn(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := conn(ctx, r.db).Model(&entity.Expense{})

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.From != nil {
		query = query.Where("date >= ?", dateArg(*params.From))
	}
	if params.To != nil {
		query = query.Where("date <= ?", dateArg(*params.To))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) Summarize(ctx context.Context, from, to time.Time) (*domainRepo.ExpenseSummary, error) {
	var summary domainRepo.ExpenseSummary
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(amount_usd), 0), COALESCE(SUM(amount_bs), 0)
		FROM expenses
		WHERE date >= ? AND date <= ?
	`, dateArg(from), dateArg(to)).Row().Scan(&summary.TotalUSD, &summary.TotalBs)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
