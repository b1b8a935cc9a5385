package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/sangkips/bodega-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SaleService finalizes point-of-sale transactions
type SaleService struct {
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	adjustmentRepo repository.InventoryAdjustmentRepository
	customerRepo   repository.CustomerRepository
	creditRepo     repository.CreditRepository
	transactor     repository.Transactor
	rates          *ExchangeRateService
	calendar       *Calendar
	creditTermDays int
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.InventoryAdjustmentRepository,
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditRepository,
	transactor repository.Transactor,
	rates *ExchangeRateService,
	calendar *Calendar,
	creditTermDays int,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
		customerRepo:   customerRepo,
		creditRepo:     creditRepo,
		transactor:     transactor,
		rates:          rates,
		calendar:       calendar,
		creditTermDays: creditTermDays,
	}
}

// SaleItemInput represents one requested line of a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CashierID     uuid.UUID
	CustomerID    *uuid.UUID
	PaymentMethod enum.PaymentMethod
	IsCredit      bool
	Notes         *string
	Items         []SaleItemInput
}

// CreateSale values the items at today's rate and, in one transaction,
// stores the sale, decrements stock with one audit record per line and opens
// the customer credit for credit sales. Any failure rolls all of it back.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateSaleInput(input); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		rate, err := s.rates.CurrentRate(ctx)
		if err != nil {
			return err
		}

		var customer *entity.Customer
		if input.CustomerID != nil {
			customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil || !customer.IsActive {
				return apperror.NewNotFoundError("Customer")
			}
		}

		products, err := s.lockProducts(ctx, input.Items)
		if err != nil {
			return err
		}

		items := make([]entity.SaleItem, 0, len(input.Items))
		lines := make([]LineValuation, 0, len(input.Items))
		adjustments := make([]entity.InventoryAdjustment, 0, len(input.Items))
		for _, item := range input.Items {
			product := products[item.ProductID]

			line, err := PriceLineItem(product, item.Quantity, rate)
			if err != nil {
				return err
			}
			if item.Quantity.GreaterThan(product.Stock) {
				return apperror.NewInsufficientStockError(product.Name, item.Quantity, product.Stock)
			}

			previous := product.Stock
			product.Stock = product.Stock.Sub(item.Quantity)

			lines = append(lines, line)
			items = append(items, entity.SaleItem{
				ProductID:    product.ID,
				Quantity:     line.Quantity,
				UnitPriceUSD: line.UnitPriceUSD,
				UnitPriceBs:  line.UnitPriceBs,
				LineTotalUSD: line.LineTotalUSD,
				LineTotalBs:  line.LineTotalBs,
			})
			adjustments = append(adjustments, entity.InventoryAdjustment{
				ProductID:     product.ID,
				Type:          enum.AdjustmentTypeRemove,
				Quantity:      item.Quantity,
				PreviousStock: previous,
				NewStock:      product.Stock,
			})
		}

		totals := SumLines(lines)

		if input.IsCredit {
			_, available, err := availableCredit(ctx, s.creditRepo, customer)
			if err != nil {
				return err
			}
			if totals.TotalUSD.GreaterThan(available) {
				return apperror.NewCreditLimitExceededError(totals.TotalUSD, available)
			}
		}

		sale = &entity.Sale{
			InvoiceNo:     utils.GenerateReferenceNo("V"),
			CustomerID:    input.CustomerID,
			CashierID:     input.CashierID,
			RateUsed:      rate,
			TotalUSD:      totals.TotalUSD,
			TotalBs:       totals.TotalBs,
			PaymentMethod: input.PaymentMethod,
			IsCredit:      input.IsCredit,
			Notes:         input.Notes,
			Items:         items,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		now := s.calendar.Now()
		for i := range adjustments {
			adj := &adjustments[i]
			if err := s.productRepo.UpdateStock(ctx, adj.ProductID, adj.NewStock); err != nil {
				return err
			}
			adj.Reason = "Sale #" + sale.InvoiceNo
			adj.SaleID = &sale.ID
			adj.AdjustedByID = input.CashierID
			adj.AdjustedAt = now
			if err := s.adjustmentRepo.Create(ctx, adj); err != nil {
				return err
			}
		}

		if input.IsCredit {
			credit := &entity.CustomerCredit{
				CustomerID:         customer.ID,
				SaleID:             sale.ID,
				PrincipalUSD:       sale.TotalUSD,
				RateUsedAtCreation: rate,
				DueDate:            s.calendar.DateOf(now).AddDate(0, 0, s.creditTermDays),
			}
			if err := s.creditRepo.Create(ctx, credit); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Sale %s finalized: %s USD / %s Bs at %s (credit=%t)",
		sale.InvoiceNo, sale.TotalUSD.StringFixed(2), sale.TotalBs.StringFixed(2), sale.RateUsed, sale.IsCredit)

	return s.GetSale(ctx, sale.ID)
}

// lockProducts locks every product in the sale and checks it can be sold
func (s *SaleService) lockProducts(ctx context.Context, items []SaleItemInput) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	locked, err := s.productRepo.LockByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*entity.Product, len(locked))
	for i := range locked {
		products[locked[i].ID] = &locked[i]
	}
	for _, id := range ids {
		product, ok := products[id]
		if !ok || !product.IsActive {
			return nil, apperror.NewNotFoundError("Product " + id.String())
		}
	}
	return products, nil
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering. From and To are business dates and
// both are inclusive.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	if params.From != nil {
		start, _ := s.calendar.DayBounds(*params.From)
		params.From = &start
	}
	if params.To != nil {
		_, end := s.calendar.DayBounds(*params.To)
		params.To = &end
	}
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, params.Pagination, total), nil
}

func validateSaleInput(input *CreateSaleInput) error {
	var fieldErrors []apperror.FieldError

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	if !input.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "Payment method must be cash, card or mobile"})
	}
	if input.IsCredit && input.CustomerID == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_id", Message: "Credit sales require a customer"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
