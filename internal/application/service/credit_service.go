package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CreditService is the settlement ledger for customer credits. Balances are
// kept in USD; Bs amounts are derived from whichever rate the caller needs.
type CreditService struct {
	creditRepo repository.CreditRepository
	transactor repository.Transactor
	rates      *ExchangeRateService
	calendar   *Calendar
}

// NewCreditService creates a new credit service
func NewCreditService(
	creditRepo repository.CreditRepository,
	transactor repository.Transactor,
	rates *ExchangeRateService,
	calendar *Calendar,
) *CreditService {
	return &CreditService{
		creditRepo: creditRepo,
		transactor: transactor,
		rates:      rates,
		calendar:   calendar,
	}
}

// Balance is what remains owed on a credit
type Balance struct {
	PrincipalUSD decimal.Decimal `json:"principal_usd"`
	PaidUSD      decimal.Decimal `json:"paid_usd"`
	PendingUSD   decimal.Decimal `json:"pending_usd"`
	PendingBs    decimal.Decimal `json:"pending_bs"`
	Rate         decimal.Decimal `json:"rate"`
}

// PendingBalance computes a balance from the principal and the USD paid so
// far, with the Bs figure at rate.
func PendingBalance(principalUSD, paidUSD, rate decimal.Decimal) (Balance, error) {
	pending := currency.Round(principalUSD).Sub(currency.Round(paidUSD))
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	pendingBs, err := currency.ToBs(pending, rate)
	if err != nil {
		return Balance{}, err
	}

	return Balance{
		PrincipalUSD: principalUSD,
		PaidUSD:      paidUSD,
		PendingUSD:   pending,
		PendingBs:    pendingBs,
		Rate:         rate,
	}, nil
}

// GetPendingBalance reads a credit's balance. A nil asOfRate uses today's
// rate. It never writes.
func (s *CreditService) GetPendingBalance(ctx context.Context, creditID uuid.UUID, asOfRate *decimal.Decimal) (*Balance, error) {
	credit, err := s.creditRepo.GetByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, apperror.NewNotFoundError("Credit")
	}
	return s.balanceOf(ctx, credit, asOfRate)
}

func (s *CreditService) balanceOf(ctx context.Context, credit *entity.CustomerCredit, asOfRate *decimal.Decimal) (*Balance, error) {
	paid, err := s.creditRepo.SumPaymentsUSD(ctx, credit.ID)
	if err != nil {
		return nil, err
	}

	var rate decimal.Decimal
	if asOfRate != nil {
		rate = *asOfRate
	} else {
		rate, err = s.rates.CurrentRate(ctx)
		if err != nil {
			return nil, err
		}
	}

	balance, err := PendingBalance(credit.PrincipalUSD, paid, rate)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// RecordPaymentInput represents a payment against a credit
type RecordPaymentInput struct {
	CreditID      uuid.UUID
	AmountBs      decimal.Decimal
	PaymentMethod enum.PaymentMethod
	Reference     *string
	Notes         *string
	ReceivedByID  uuid.UUID
}

// PaymentResult is the stored payment and the credit's state after it
type PaymentResult struct {
	Payment *entity.CreditPayment  `json:"payment"`
	Credit  *entity.CustomerCredit `json:"credit"`
	Balance *Balance               `json:"balance"`
}

// RecordPayment converts the Bs received at today's rate and applies it to
// the credit. The credit is settled once the USD paid reaches the principal.
// A payment worth more than the pending USD balance is rejected with nothing
// written.
func (s *CreditService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*PaymentResult, error) {
	if !input.AmountBs.IsPositive() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount_bs", Message: "Amount must be greater than zero"},
		})
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "Payment method must be cash, card or mobile"},
		})
	}

	result := &PaymentResult{}
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		credit, err := s.creditRepo.LockByID(ctx, input.CreditID)
		if err != nil {
			return err
		}
		if credit == nil {
			return apperror.NewNotFoundError("Credit")
		}
		if credit.IsPaid {
			return apperror.ErrCreditAlreadyPaid
		}

		rate, err := s.rates.CurrentRate(ctx)
		if err != nil {
			return err
		}

		amountUSD, err := currency.ToUSD(input.AmountBs, rate)
		if err != nil {
			return err
		}
		if !amountUSD.IsPositive() {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "amount_bs", Message: "Amount is worth less than 0.01 USD"},
			})
		}

		paid, err := s.creditRepo.SumPaymentsUSD(ctx, credit.ID)
		if err != nil {
			return err
		}
		before, err := PendingBalance(credit.PrincipalUSD, paid, rate)
		if err != nil {
			return err
		}
		if amountUSD.GreaterThan(before.PendingUSD) {
			return apperror.NewOverpaymentError(amountUSD, before.PendingUSD)
		}

		now := s.calendar.Now()
		payment := &entity.CreditPayment{
			CreditID:          credit.ID,
			AmountBs:          currency.Round(input.AmountBs),
			RateUsedAtPayment: rate,
			AmountUSD:         amountUSD,
			PaymentMethod:     input.PaymentMethod,
			Reference:         input.Reference,
			Notes:             input.Notes,
			ReceivedByID:      input.ReceivedByID,
			PaidAt:            now,
		}
		if err := s.creditRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		totalPaid := paid.Add(amountUSD)
		if currency.Round(totalPaid).GreaterThanOrEqual(currency.Round(credit.PrincipalUSD)) {
			if err := s.creditRepo.MarkPaid(ctx, credit.ID, now); err != nil {
				return err
			}
			credit.IsPaid = true
			credit.PaidAt = &now
		}

		after, err := PendingBalance(credit.PrincipalUSD, totalPaid, rate)
		if err != nil {
			return err
		}

		result.Payment = payment
		result.Credit = credit
		result.Balance = &after
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Payment of %s Bs (%s USD) recorded on credit %s; pending %s USD, paid=%t",
		result.Payment.AmountBs.StringFixed(2), result.Payment.AmountUSD.StringFixed(2),
		result.Credit.ID, result.Balance.PendingUSD.StringFixed(2), result.Credit.IsPaid)

	return result, nil
}

// CreditDetail is a credit with its payments and current balance
type CreditDetail struct {
	*entity.CustomerCredit
	IsOverdue bool     `json:"is_overdue"`
	Balance   *Balance `json:"balance"`
}

// GetCredit retrieves a credit with payments and its balance at today's rate
func (s *CreditService) GetCredit(ctx context.Context, id uuid.UUID) (*CreditDetail, error) {
	credit, err := s.creditRepo.GetWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, apperror.NewNotFoundError("Credit")
	}

	balance, err := s.balanceOf(ctx, credit, nil)
	if err != nil {
		return nil, err
	}

	return &CreditDetail{
		CustomerCredit: credit,
		IsOverdue:      credit.IsOverdue(s.calendar.Today()),
		Balance:        balance,
	}, nil
}

// ListCredits lists credits filtered by customer and status
func (s *CreditService) ListCredits(ctx context.Context, params *repository.CreditFilterParams) (*pagination.PaginatedResult[entity.CustomerCredit], error) {
	switch params.Status {
	case "", repository.CreditStatusPending, repository.CreditStatusPaid, repository.CreditStatusOverdue:
	default:
		return nil, apperror.NewBadRequestError("Status must be pending, paid or overdue")
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Today = s.calendar.Today()

	credits, total, err := s.creditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(credits, params.Pagination, total), nil
}
