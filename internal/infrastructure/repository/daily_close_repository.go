package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"gorm.io/gorm"
)

type dailyCloseRepository struct {
	db *gorm.DB
}

// NewDailyCloseRepository creates a new daily close repository
func NewDailyCloseRepository(db *gorm.DB) domainRepo.DailyCloseRepository {
	return &dailyCloseRepository{db: db}
}

func (r *dailyCloseRepository) Create(ctx context.Context, close *entity.DailyClose) error {
	err := conn(ctx, r.db).Create(close).Error
	if isUniqueViolation(err) {
		return apperror.ErrDuplicateDailyClose
	}
	return err
}

func (r *dailyCloseRepository) GetByDate(ctx context.Context, date time.Time) (*entity.DailyClose, error) {
	var close entity.DailyClose
	err := conn(ctx, r.db).First(&close, "date = ?", dateArg(date)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &close, err
}

func (r *dailyCloseRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.DailyClose, int64, error) {
	var closes []entity.DailyClose
	var total int64

	query := conn(ctx, r.db).Model(&entity.DailyClose{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("date DESC").
		Find(&closes).Error

	return closes, total, err
}
