package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExpenseService records operating costs
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	rates       *ExchangeRateService
	calendar    *Calendar
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, rates *ExchangeRateService, calendar *Calendar) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		rates:       rates,
		calendar:    calendar,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Category      enum.ExpenseCategory
	Description   string
	AmountBs      decimal.Decimal
	Date          *time.Time
	ReceiptNumber *string
	Notes         *string
	CreatedByID   uuid.UUID
}

// CreateExpense stores an expense valued at the rate in force on its date
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	var fieldErrors []apperror.FieldError
	if !input.Category.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Unknown expense category"})
	}
	if !input.AmountBs.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount_bs", Message: "Amount must be greater than zero"})
	}
	if input.Date != nil && s.calendar.IsFuture(*input.Date) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "Date cannot be in the future"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	date := s.calendar.Today()
	if input.Date != nil {
		date = civilDate(*input.Date)
	}

	rate, err := s.rates.GetLatestRate(ctx, date)
	if err != nil {
		return nil, err
	}

	amountUSD, err := currency.ToUSD(input.AmountBs, rate.RateBsPerUSD)
	if err != nil {
		return nil, err
	}

	expense := &entity.Expense{
		Category:      input.Category,
		Description:   input.Description,
		AmountBs:      currency.Round(input.AmountBs),
		RateUsed:      rate.RateBsPerUSD,
		AmountUSD:     amountUSD,
		Date:          date,
		ReceiptNumber: input.ReceiptNumber,
		Notes:         input.Notes,
		CreatedByID:   input.CreatedByID,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(expenses, params.Pagination, total), nil
}
