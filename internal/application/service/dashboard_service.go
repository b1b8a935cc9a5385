package service

import (
	"context"
	"errors"

	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/shopspring/decimal"
)

const (
	dashboardTopProducts = 5
	dashboardTopDays     = 30
	dashboardTrendDays   = 7
)

// DashboardService provides the store overview
type DashboardService struct {
	saleRepo    repository.SaleRepository
	creditRepo  repository.CreditRepository
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	rates       *ExchangeRateService
	calendar    *Calendar
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditRepository,
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
	rates *ExchangeRateService,
	calendar *Calendar,
) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		creditRepo:  creditRepo,
		productRepo: productRepo,
		reportRepo:  reportRepo,
		rates:       rates,
		calendar:    calendar,
	}
}

// DashboardStats represents dashboard statistics. Rate and the Bs value of
// outstanding credit are nil while no exchange rate is configured.
type DashboardStats struct {
	Rate            *decimal.Decimal              `json:"rate"`
	TodaySalesCount int64                         `json:"today_sales_count"`
	TodaySalesUSD   decimal.Decimal               `json:"today_sales_usd"`
	TodaySalesBs    decimal.Decimal               `json:"today_sales_bs"`
	OutstandingUSD  decimal.Decimal               `json:"outstanding_credit_usd"`
	OutstandingBs   *decimal.Decimal              `json:"outstanding_credit_bs"`
	OverdueCredits  int64                         `json:"overdue_credits"`
	LowStockCount   int64                         `json:"low_stock_count"`
	TopProducts     []repository.TopProductResult `json:"top_products"`
	DailySalesData  []repository.DailySalesResult `json:"daily_sales_data"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	today := s.calendar.Today()
	start, end := s.calendar.DayBounds(today)

	sales, err := s.saleRepo.Summarize(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stats.TodaySalesCount = sales.Count
	stats.TodaySalesUSD = sales.TotalUSD
	stats.TodaySalesBs = sales.TotalBs

	outstanding, err := s.creditRepo.OutstandingUSD(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.OutstandingUSD = currency.Round(outstanding)

	rate, err := s.rates.CurrentRate(ctx)
	switch {
	case err == nil:
		outstandingBs, err := currency.ToBs(stats.OutstandingUSD, rate)
		if err != nil {
			return nil, err
		}
		stats.Rate = &rate
		stats.OutstandingBs = &outstandingBs
	case !errors.Is(err, apperror.ErrNoExchangeRate):
		return nil, err
	}

	if stats.OverdueCredits, err = s.creditRepo.CountOverdue(ctx, today); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(ctx); err != nil {
		return nil, err
	}

	topFrom, _ := s.calendar.DayBounds(today.AddDate(0, 0, -(dashboardTopDays - 1)))
	if stats.TopProducts, err = s.reportRepo.TopProducts(ctx, topFrom, end, dashboardTopProducts); err != nil {
		return nil, err
	}

	trendFrom, _ := s.calendar.DayBounds(today.AddDate(0, 0, -(dashboardTrendDays - 1)))
	if stats.DailySalesData, err = s.reportRepo.DailySales(ctx, trendFrom, end); err != nil {
		return nil, err
	}

	return stats, nil
}
