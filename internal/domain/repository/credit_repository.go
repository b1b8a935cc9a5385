package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Credit status filters
const (
	CreditStatusPending = "pending"
	CreditStatusPaid    = "paid"
	CreditStatusOverdue = "overdue"
)

// CreditRepository stores customer credits and the payments made against them
type CreditRepository interface {
	Create(ctx context.Context, credit *entity.CustomerCredit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error)
	// LockByID loads the credit with a row lock held until the enclosing
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error)
	GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	List(ctx context.Context, params *CreditFilterParams) ([]entity.CustomerCredit, int64, error)

	CreatePayment(ctx context.Context, payment *entity.CreditPayment) error
	SumPaymentsUSD(ctx context.Context, creditID uuid.UUID) (decimal.Decimal, error)

	// UnpaidPrincipalUSD sums principal_usd over the customer's unpaid
	// credits, ignoring partial payments. It is what counts against the
	// credit limit.
	UnpaidPrincipalUSD(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	// OutstandingUSD is principal minus payments over unpaid credits. A nil
	// customerID sums across all customers.
	OutstandingUSD(ctx context.Context, customerID *uuid.UUID) (decimal.Decimal, error)
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
}

// CreditFilterParams contains filtering parameters for credit queries
type CreditFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     string
	Today      time.Time
}
