package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type exchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository
func NewExchangeRateRepository(db *gorm.DB) domainRepo.ExchangeRateRepository {
	return &exchangeRateRepository{db: db}
}

func (r *exchangeRateRepository) Upsert(ctx context.Context, rate *entity.ExchangeRate) error {
	db := conn(ctx, r.db)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate_bs_per_usd", "set_by_id", "updated_at"}),
	}).Create(rate).Error
	if err != nil {
		return err
	}
	// On conflict the generated id is not the stored one. Reload into a fresh
	// struct, since First would also filter on a non-zero primary key.
	var stored entity.ExchangeRate
	if err := db.First(&stored, "date = ?", dateArg(rate.Date)).Error; err != nil {
		return err
	}
	*rate = stored
	return nil
}

func (r *exchangeRateRepository) GetByDate(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate
	err := conn(ctx, r.db).First(&rate, "date = ?", dateArg(date)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *exchangeRateRepository) GetLatest(ctx context.Context, asOf time.Time) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate
	err := conn(ctx, r.db).
		Where("date <= ?", dateArg(asOf)).
		Order("date DESC").
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *exchangeRateRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.ExchangeRate, int64, error) {
	var rates []entity.ExchangeRate
	var total int64

	query := conn(ctx, r.db).Model(&entity.ExchangeRate{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("SetBy").
		Order("date DESC").
		Find(&rates).Error

	return rates, total, err
}
