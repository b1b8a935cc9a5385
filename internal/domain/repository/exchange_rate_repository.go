package repository

import (
	"context"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/pagination"
)

// ExchangeRateRepository defines the interface for exchange rate storage
type ExchangeRateRepository interface {
	// Upsert inserts the rate or, when a rate already exists for the same
	// date, overwrites its value and author in place.
	Upsert(ctx context.Context, rate *entity.ExchangeRate) error
	GetByDate(ctx context.Context, date time.Time) (*entity.ExchangeRate, error)
	// GetLatest returns the rate with the greatest date <= asOf, or nil.
	GetLatest(ctx context.Context, asOf time.Time) (*entity.ExchangeRate, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.ExchangeRate, int64, error)
}
