package repository

import (
	"context"
	"time"

	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/pagination"
)

// DailyCloseRepository defines the interface for daily close storage
type DailyCloseRepository interface {
	// Create fails with apperror.ErrDuplicateDailyClose when the date is taken.
	Create(ctx context.Context, close *entity.DailyClose) error
	GetByDate(ctx context.Context, date time.Time) (*entity.DailyClose, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.DailyClose, int64, error)
}
