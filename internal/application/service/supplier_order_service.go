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
	"github.com/sangkips/bodega-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SupplierOrderService handles purchases from suppliers
type SupplierOrderService struct {
	orderRepo      repository.SupplierOrderRepository
	supplierRepo   repository.SupplierRepository
	productRepo    repository.ProductRepository
	adjustmentRepo repository.InventoryAdjustmentRepository
	transactor     repository.Transactor
	rates          *ExchangeRateService
	calendar       *Calendar
}

// NewSupplierOrderService creates a new supplier order service
func NewSupplierOrderService(
	orderRepo repository.SupplierOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.InventoryAdjustmentRepository,
	transactor repository.Transactor,
	rates *ExchangeRateService,
	calendar *Calendar,
) *SupplierOrderService {
	return &SupplierOrderService{
		orderRepo:      orderRepo,
		supplierRepo:   supplierRepo,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
		transactor:     transactor,
		rates:          rates,
		calendar:       calendar,
	}
}

// SupplierOrderItemInput represents one line of a supplier order
type SupplierOrderItemInput struct {
	ProductID   uuid.UUID
	Quantity    decimal.Decimal
	UnitCostUSD decimal.Decimal
}

// CreateSupplierOrderInput represents the create supplier order input
type CreateSupplierOrderInput struct {
	SupplierID  uuid.UUID
	CreatedByID uuid.UUID
	Notes       *string
	Items       []SupplierOrderItemInput
}

// CreateOrder stores a pending order valued at today's rate. Stock does not
// change until the order is received.
func (s *SupplierOrderService) CreateOrder(ctx context.Context, input *CreateSupplierOrderInput) (*entity.SupplierOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "At least one item is required"},
		})
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	rate, err := s.rates.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.SupplierOrderItem, 0, len(input.Items))
	lines := make([]LineValuation, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product " + item.ProductID.String())
		}
		if err := ValidateQuantity(product, item.Quantity); err != nil {
			return nil, err
		}
		if item.UnitCostUSD.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "unit_cost_usd", Message: "Unit cost cannot be negative"},
			})
		}

		line, err := valueLine(item.Quantity, currency.Round(item.UnitCostUSD), rate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		items = append(items, entity.SupplierOrderItem{
			ProductID:    product.ID,
			Quantity:     line.Quantity,
			UnitCostUSD:  line.UnitPriceUSD,
			UnitCostBs:   line.UnitPriceBs,
			LineTotalUSD: line.LineTotalUSD,
			LineTotalBs:  line.LineTotalBs,
		})
	}

	totals := SumLines(lines)
	order := &entity.SupplierOrder{
		OrderNo:     utils.GenerateReferenceNo("OC"),
		SupplierID:  supplier.ID,
		Status:      enum.SupplierOrderStatusPending,
		RateUsed:    rate,
		TotalUSD:    totals.TotalUSD,
		TotalBs:     totals.TotalBs,
		Notes:       input.Notes,
		CreatedByID: input.CreatedByID,
		Items:       items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, order.ID)
}

// ReceiveOrderInput represents the receive supplier order input
type ReceiveOrderInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	// UpdatePrices copies each line's unit cost onto the product's purchase price.
	UpdatePrices bool
}

// ReceiveOrder moves a pending order to received and adds its quantities to
// stock, recording one adjustment per line.
func (s *SupplierOrderService) ReceiveOrder(ctx context.Context, input *ReceiveOrderInput) (*entity.SupplierOrder, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockPending(ctx, input.OrderID)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
		locked, err := s.productRepo.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		products := make(map[uuid.UUID]*entity.Product, len(locked))
		for i := range locked {
			products[locked[i].ID] = &locked[i]
		}

		now := s.calendar.Now()
		for _, item := range order.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return apperror.NewNotFoundError("Product " + item.ProductID.String())
			}

			previous := product.Stock
			product.Stock = product.Stock.Add(item.Quantity)
			if err := s.productRepo.UpdateStock(ctx, product.ID, product.Stock); err != nil {
				return err
			}
			if input.UpdatePrices {
				if err := s.productRepo.UpdatePurchasePrice(ctx, product.ID, item.UnitCostUSD); err != nil {
					return err
				}
			}

			err := s.adjustmentRepo.Create(ctx, &entity.InventoryAdjustment{
				ProductID:       product.ID,
				Type:            enum.AdjustmentTypeAdd,
				Quantity:        item.Quantity,
				PreviousStock:   previous,
				NewStock:        product.Stock,
				Reason:          "Supplier order #" + order.OrderNo,
				SupplierOrderID: &order.ID,
				AdjustedByID:    input.UserID,
				AdjustedAt:      now,
			})
			if err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateStatus(ctx, order.ID, enum.SupplierOrderStatusReceived, &now)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Supplier order %s received (update prices=%t)", input.OrderID, input.UpdatePrices)
	return s.GetOrder(ctx, input.OrderID)
}

// CancelOrder cancels a pending order
func (s *SupplierOrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockPending(ctx, id)
		if err != nil {
			return err
		}
		return s.orderRepo.UpdateStatus(ctx, order.ID, enum.SupplierOrderStatusCancelled, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// MarkPaid records that the supplier has been paid. Cancelled orders cannot
// be paid; paying twice is a no-op.
func (s *SupplierOrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.LockWithItems(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Supplier order")
		}
		if order.Status == enum.SupplierOrderStatusCancelled {
			return apperror.ErrInvalidOrderState
		}
		if order.Paid {
			return nil
		}
		return s.orderRepo.MarkPaid(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func (s *SupplierOrderService) lockPending(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.orderRepo.LockWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	if order.Status != enum.SupplierOrderStatusPending {
		return nil, apperror.ErrInvalidOrderState
	}
	return order, nil
}

// GetOrder retrieves a supplier order with its items
func (s *SupplierOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Supplier order")
	}
	return order, nil
}

// ListOrders lists supplier orders with filtering
func (s *SupplierOrderService) ListOrders(ctx context.Context, params *repository.SupplierOrderFilterParams) (*pagination.PaginatedResult[entity.SupplierOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(orders, params.Pagination, total), nil
}
