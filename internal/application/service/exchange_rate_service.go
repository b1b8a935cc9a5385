package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ExchangeRateService holds the authoritative Bs per USD rate, one per date.
// Nothing is cached: every monetary operation reads the rate it needs.
type ExchangeRateService struct {
	rateRepo repository.ExchangeRateRepository
	calendar *Calendar
}

// NewExchangeRateService creates a new exchange rate service
func NewExchangeRateService(rateRepo repository.ExchangeRateRepository, calendar *Calendar) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo: rateRepo,
		calendar: calendar,
	}
}

// SetRateInput represents the set rate input
type SetRateInput struct {
	// Date defaults to today when nil.
	Date         *time.Time
	RateBsPerUSD decimal.Decimal
	SetByID      uuid.UUID
}

// SetRate creates the rate for a date, or overwrites the rate already stored
// for that date.
func (s *ExchangeRateService) SetRate(ctx context.Context, input *SetRateInput) (*entity.ExchangeRate, error) {
	if err := currency.ValidateRate(input.RateBsPerUSD); err != nil {
		return nil, err
	}

	date := s.calendar.Today()
	if input.Date != nil {
		if s.calendar.IsFuture(*input.Date) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "date", Message: "Date cannot be in the future"},
			})
		}
		date = civilDate(*input.Date)
	}

	rate := &entity.ExchangeRate{
		Date:         date,
		RateBsPerUSD: input.RateBsPerUSD,
		SetByID:      input.SetByID,
	}
	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return nil, err
	}

	log.Printf("Exchange rate for %s set to %s Bs/USD by %s", date.Format("2006-01-02"), input.RateBsPerUSD.String(), input.SetByID)
	return rate, nil
}

// GetLatestRate returns the most recent rate dated on or before asOf
func (s *ExchangeRateService) GetLatestRate(ctx context.Context, asOf time.Time) (*entity.ExchangeRate, error) {
	rate, err := s.rateRepo.GetLatest(ctx, civilDate(asOf))
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, apperror.NewNoExchangeRateError(asOf.Format("2006-01-02"))
	}
	return rate, nil
}

// GetCurrentRate returns the rate in force today
func (s *ExchangeRateService) GetCurrentRate(ctx context.Context) (*entity.ExchangeRate, error) {
	return s.GetLatestRate(ctx, s.calendar.Today())
}

// CurrentRate returns today's Bs per USD value
func (s *ExchangeRateService) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := s.GetCurrentRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return rate.RateBsPerUSD, nil
}

// ListRates lists the rate history, newest first
func (s *ExchangeRateService) ListRates(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ExchangeRate], error) {
	rates, total, err := s.rateRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(rates, params, total), nil
}
