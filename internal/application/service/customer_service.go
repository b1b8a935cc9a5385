package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/currency"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	creditRepo   repository.CreditRepository
	rates        *ExchangeRateService
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditRepository,
	rates *ExchangeRateService,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		creditRepo:   creditRepo,
		rates:        rates,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name           string
	Phone          *string
	Email          *string
	Address        *string
	CreditLimitUSD decimal.Decimal
	Notes          *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.CreditLimitUSD.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "credit_limit_usd", Message: "Credit limit cannot be negative"},
		})
	}

	customer := &entity.Customer{
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		Address:        input.Address,
		CreditLimitUSD: currency.Round(input.CreditLimitUSD),
		Notes:          input.Notes,
		IsActive:       true,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers by name
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search, includeInactive)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, params, total), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID             uuid.UUID
	Name           *string
	Phone          *string
	Email          *string
	Address        *string
	CreditLimitUSD *decimal.Decimal
	Notes          *string
	IsActive       *bool
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.CreditLimitUSD != nil {
		if input.CreditLimitUSD.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "credit_limit_usd", Message: "Credit limit cannot be negative"},
			})
		}
		customer.CreditLimitUSD = currency.Round(*input.CreditLimitUSD)
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeactivateCustomer hides a customer from new sales. Its credits are kept.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	customer.IsActive = false
	return s.customerRepo.Update(ctx, customer)
}

// CreditSummary is a customer's credit position. Bs figures use today's rate.
type CreditSummary struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	CreditLimitUSD decimal.Decimal `json:"credit_limit_usd"`
	UsedUSD        decimal.Decimal `json:"used_usd"`
	AvailableUSD   decimal.Decimal `json:"available_usd"`
	AvailableBs    decimal.Decimal `json:"available_bs"`
	Rate           decimal.Decimal `json:"rate"`
}

// GetCreditSummary returns how much credit the customer has used and has left
func (s *CustomerService) GetCreditSummary(ctx context.Context, id uuid.UUID) (*CreditSummary, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	used, available, err := availableCredit(ctx, s.creditRepo, customer)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}
	availableBs, err := currency.ToBs(available, rate)
	if err != nil {
		return nil, err
	}

	return &CreditSummary{
		CustomerID:     customer.ID,
		CreditLimitUSD: customer.CreditLimitUSD,
		UsedUSD:        used,
		AvailableUSD:   available,
		AvailableBs:    availableBs,
		Rate:           rate,
	}, nil
}

// availableCredit returns the used and available USD credit of a customer.
// Used is the full principal of every unpaid credit; partial payments free
// no credit until the credit is settled. Available is the limit minus used,
// floored at zero.
func availableCredit(ctx context.Context, creditRepo repository.CreditRepository, customer *entity.Customer) (used, available decimal.Decimal, err error) {
	used, err = creditRepo.UnpaidPrincipalUSD(ctx, customer.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	used = currency.Round(used)

	available = customer.CreditLimitUSD.Sub(used)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return used, available, nil
}
