package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new customer credit repository
func NewCreditRepository(db *gorm.DB) domainRepo.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) Create(ctx context.Context, credit *entity.CustomerCredit) error {
	return conn(ctx, r.db).Omit("Customer", "Payments").Create(credit).Error
}

func (r *creditRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	var credit entity.CustomerCredit
	err := conn(ctx, r.db).First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credit, err
}

func (r *creditRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	var credit entity.CustomerCredit
	err := conn(ctx, r.db).
		Clauses(forUpdate()).
		First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credit, err
}

func (r *creditRepository) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	var credit entity.CustomerCredit
	err := conn(ctx, r.db).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC")
		}).
		Preload("Customer").
		First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credit, err
}

func (r *creditRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	return conn(ctx, r.db).Model(&entity.CustomerCredit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_paid": true,
			"paid_at": paidAt,
		}).Error
}

func (r *creditRepository) List(ctx context.Context, params *domainRepo.CreditFilterParams) ([]entity.CustomerCredit, int64, error) {
	var credits []entity.CustomerCredit
	var total int64

	query := conn(ctx, r.db).Model(&entity.CustomerCredit{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	switch params.Status {
	case domainRepo.CreditStatusPending:
		query = query.Where("is_paid = ?", false)
	case domainRepo.CreditStatusPaid:
		query = query.Where("is_paid = ?", true)
	case domainRepo.CreditStatusOverdue:
		query = query.Where("is_paid = ? AND due_date < ?", false, dateArg(params.Today))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("due_date ASC, created_at ASC").
		Find(&credits).Error

	return credits, total, err
}

func (r *creditRepository) CreatePayment(ctx context.Context, payment *entity.CreditPayment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *creditRepository) SumPaymentsUSD(ctx context.Context, creditID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(ctx, r.db).Raw(
		"SELECT COALESCE(SUM(amount_usd), 0) FROM credit_payments WHERE credit_id = ?",
		creditID,
	).Row().Scan(&sum)
	return sum, err
}

func (r *creditRepository) UnpaidPrincipalUSD(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := conn(ctx, r.db).Raw(
		"SELECT COALESCE(SUM(principal_usd), 0) FROM customer_credits WHERE customer_id = ? AND is_paid = false",
		customerID,
	).Row().Scan(&total)
	return total, err
}

func (r *creditRepository) OutstandingUSD(ctx context.Context, customerID *uuid.UUID) (decimal.Decimal, error) {
	sql := `
		SELECT COALESCE(SUM(c.principal_usd - COALESCE(p.paid_usd, 0)), 0)
		FROM customer_credits c
		LEFT JOIN (
			SELECT credit_id, SUM(amount_usd) AS paid_usd
			FROM credit_payments
			GROUP BY credit_id
		) p ON p.credit_id = c.id
		WHERE c.is_paid = false`
	args := []interface{}{}
	if customerID != nil {
		sql += " AND c.customer_id = ?"
		args = append(args, *customerID)
	}

	var total decimal.Decimal
	err := conn(ctx, r.db).Raw(sql, args...).Row().Scan(&total)
	return total, err
}

func (r *creditRepository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.CustomerCredit{}).
		Where("is_paid = ? AND due_date < ?", false, dateArg(today)).
		Count(&count).Error
	return count, err
}
