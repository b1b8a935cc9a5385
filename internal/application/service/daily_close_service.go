package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/pagination"
)

// DailyCloseService produces the end-of-day summary
type DailyCloseService struct {
	closeRepo   repository.DailyCloseRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	transactor  repository.Transactor
	calendar    *Calendar
}

// NewDailyCloseService creates a new daily close service
func NewDailyCloseService(
	closeRepo repository.DailyCloseRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	transactor repository.Transactor,
	calendar *Calendar,
) *DailyCloseService {
	return &DailyCloseService{
		closeRepo:   closeRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		transactor:  transactor,
		calendar:    calendar,
	}
}

// CloseDayInput represents the close day input
type CloseDayInput struct {
	// Date defaults to today when nil.
	Date       *time.Time
	Notes      *string
	ClosedByID uuid.UUID
}

// CloseDay totals a date's sales and expenses. Each date closes once; the
// existence check and insert share a transaction and the unique date index
// catches a concurrent close.
func (s *DailyCloseService) CloseDay(ctx context.Context, input *CloseDayInput) (*entity.DailyClose, error) {
	date := s.calendar.Today()
	if input.Date != nil {
		if s.calendar.IsFuture(*input.Date) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "date", Message: "Date cannot be in the future"},
			})
		}
		date = civilDate(*input.Date)
	}

	var dailyClose *entity.DailyClose
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.closeRepo.GetByDate(ctx, date)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ErrDuplicateDailyClose
		}

		start, end := s.calendar.DayBounds(date)
		sales, err := s.saleRepo.Summarize(ctx, start, end)
		if err != nil {
			return err
		}
		expenses, err := s.expenseRepo.Summarize(ctx, date, date)
		if err != nil {
			return err
		}

		dailyClose = &entity.DailyClose{
			Date:             date,
			SalesCount:       sales.Count,
			SalesTotalUSD:    sales.TotalUSD,
			SalesTotalBs:     sales.TotalBs,
			ExpensesTotalUSD: expenses.TotalUSD,
			ExpensesTotalBs:  expenses.TotalBs,
			ProfitUSD:        sales.TotalUSD.Sub(expenses.TotalUSD),
			ProfitBs:         sales.TotalBs.Sub(expenses.TotalBs),
			Notes:            input.Notes,
			ClosedByID:       input.ClosedByID,
			ClosedAt:         s.calendar.Now(),
		}
		return s.closeRepo.Create(ctx, dailyClose)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Day %s closed: %d sales, profit %s USD",
		date.Format("2006-01-02"), dailyClose.SalesCount, dailyClose.ProfitUSD.StringFixed(2))
	return dailyClose, nil
}

// GetDailyClose retrieves the close for a date
func (s *DailyCloseService) GetDailyClose(ctx context.Context, date time.Time) (*entity.DailyClose, error) {
	dailyClose, err := s.closeRepo.GetByDate(ctx, civilDate(date))
	if err != nil {
		return nil, err
	}
	if dailyClose == nil {
		return nil, apperror.NewNotFoundError("Daily close")
	}
	return dailyClose, nil
}

// ListDailyCloses lists closes, newest first
func (s *DailyCloseService) ListDailyCloses(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DailyClose], error) {
	closes, total, err := s.closeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(closes, params, total), nil
}
