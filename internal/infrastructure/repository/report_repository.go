package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			p.barcode,
			COALESCE(SUM(si.quantity), 0) AS quantity_sold,
			COALESCE(SUM(si.line_total_usd), 0) AS revenue_usd
		FROM sale_items si
		INNER JOIN sales s ON s.id = si.sale_id
		INNER JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= ? AND s.created_at < ?
		GROUP BY p.id, p.name, p.barcode
		ORDER BY revenue_usd DESC
		LIMIT ?
	`, from, to, limit).Scan(&results).Error

	return results, err
}

func (r *reportRepository) DailySales(ctx context.Context, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	// DATE() resolves in the session time zone set from DB_TIMEZONE.
	err := conn(ctx, r.db).Raw(`
		SELECT
			DATE(created_at) AS date,
			COUNT(*) AS sales_count,
			COALESCE(SUM(total_usd), 0) AS total_usd,
			COALESCE(SUM(total_bs), 0) AS total_bs
		FROM sales
		WHERE created_at >= ? AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY date ASC
	`, from, to).Scan(&results).Error

	return results, err
}
