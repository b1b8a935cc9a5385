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

// ProductService handles product catalog and stock operations
type ProductService struct {
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	adjustmentRepo repository.InventoryAdjustmentRepository
	transactor     repository.Transactor
	rates          *ExchangeRateService
	calendar       *Calendar
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	adjustmentRepo repository.InventoryAdjustmentRepository,
	transactor repository.Transactor,
	rates *ExchangeRateService,
	calendar *Calendar,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		adjustmentRepo: adjustmentRepo,
		transactor:     transactor,
		rates:          rates,
		calendar:       calendar,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID           uuid.UUID
	CategoryID       *uuid.UUID
	Barcode          string
	Name             string
	Description      *string
	UnitType         enum.UnitType
	PurchasePriceUSD decimal.Decimal
	SellingPriceUSD  decimal.Decimal
	Stock            decimal.Decimal
	MinStock         *decimal.Decimal
	IsBulkPricing    bool
	BulkMinQuantity  decimal.Decimal
	BulkPriceUSD     decimal.Decimal
}

// CreateProduct creates a new product. Opening stock is recorded as a "set"
// adjustment.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	barcode := input.Barcode
	if barcode == "" {
		barcode = utils.GenerateReferenceNo("P")
	}

	existing, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product barcode already exists")
	}

	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	unitType := input.UnitType
	if unitType == "" {
		unitType = enum.UnitTypeUnit
	}

	product := &entity.Product{
		CategoryID:       input.CategoryID,
		Barcode:          barcode,
		Name:             input.Name,
		Description:      input.Description,
		UnitType:         unitType,
		PurchasePriceUSD: currency.Round(input.PurchasePriceUSD),
		SellingPriceUSD:  currency.Round(input.SellingPriceUSD),
		Stock:            input.Stock,
		MinStock:         decimal.NewFromInt(5),
		IsBulkPricing:    input.IsBulkPricing,
		BulkMinQuantity:  input.BulkMinQuantity,
		BulkPriceUSD:     currency.Round(input.BulkPriceUSD),
		IsActive:         true,
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Create(ctx, product); err != nil {
			return err
		}
		if !product.Stock.IsPositive() {
			return nil
		}
		return s.adjustmentRepo.Create(ctx, &entity.InventoryAdjustment{
			ProductID:     product.ID,
			Type:          enum.AdjustmentTypeSet,
			Quantity:      product.Stock,
			PreviousStock: decimal.Zero,
			NewStock:      product.Stock,
			Reason:        "Initial stock",
			AdjustedByID:  input.UserID,
			AdjustedAt:    s.calendar.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, params.Pagination, total), nil
}

// UpdateProductInput represents the update product input. Stock is changed
// only through adjustments, sales and received supplier orders.
type UpdateProductInput struct {
	ID               uuid.UUID
	CategoryID       *uuid.UUID
	Barcode          *string
	Name             *string
	Description      *string
	UnitType         *enum.UnitType
	PurchasePriceUSD *decimal.Decimal
	SellingPriceUSD  *decimal.Decimal
	MinStock         *decimal.Decimal
	IsBulkPricing    *bool
	BulkMinQuantity  *decimal.Decimal
	BulkPriceUSD     *decimal.Decimal
	IsActive         *bool
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Barcode != nil && *input.Barcode != product.Barcode {
		existing, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("Product barcode already exists")
		}
		product.Barcode = *input.Barcode
	}

	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
		product.Category = nil
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.UnitType != nil {
		product.UnitType = *input.UnitType
	}
	if input.PurchasePriceUSD != nil {
		product.PurchasePriceUSD = currency.Round(*input.PurchasePriceUSD)
	}
	if input.SellingPriceUSD != nil {
		product.SellingPriceUSD = currency.Round(*input.SellingPriceUSD)
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.IsBulkPricing != nil {
		product.IsBulkPricing = *input.IsBulkPricing
	}
	if input.BulkMinQuantity != nil {
		product.BulkMinQuantity = *input.BulkMinQuantity
	}
	if input.BulkPriceUSD != nil {
		product.BulkPriceUSD = currency.Round(*input.BulkPriceUSD)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeactivateProduct removes a product from sale without deleting its history
func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	product.IsActive = false
	product.Category = nil
	return s.productRepo.Update(ctx, product)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Type      enum.AdjustmentType
	Quantity  decimal.Decimal
	Reason    string
	UserID    uuid.UUID
}

// AdjustStock applies a manual stock movement and records it. The product
// row stays locked until the audit record is written.
func (s *ProductService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.InventoryAdjustment, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "type", Message: "Adjustment type must be add, remove or set"},
		})
	}
	if input.Reason == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reason", Message: "Reason is required"},
		})
	}

	var adjustment *entity.InventoryAdjustment
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.productRepo.LockByIDs(ctx, []uuid.UUID{input.ProductID})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return apperror.NewNotFoundError("Product")
		}
		product := &locked[0]

		newStock, err := applyAdjustment(product, input.Type, input.Quantity)
		if err != nil {
			return err
		}

		if err := s.productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}

		adjustment = &entity.InventoryAdjustment{
			ProductID:     product.ID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			Reason:        input.Reason,
			AdjustedByID:  input.UserID,
			AdjustedAt:    s.calendar.Now(),
		}
		return s.adjustmentRepo.Create(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Stock of product %s adjusted (%s %s): %s -> %s",
		adjustment.ProductID, adjustment.Type, adjustment.Quantity, adjustment.PreviousStock, adjustment.NewStock)
	return adjustment, nil
}

// ListAdjustments lists a product's stock movements, newest first
func (s *ProductService) ListAdjustments(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.InventoryAdjustment], error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	adjustments, total, err := s.adjustmentRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(adjustments, params, total), nil
}

// Quote is a line item priced at today's rate without touching stock
type Quote struct {
	ProductID uuid.UUID       `json:"product_id"`
	Rate      decimal.Decimal `json:"rate"`
	LineValuation
}

// QuoteLineItem prices quantity units of a product at the current rate
func (s *ProductService) QuoteLineItem(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) (*Quote, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.CurrentRate(ctx)
	if err != nil {
		return nil, err
	}

	line, err := PriceLineItem(product, quantity, rate)
	if err != nil {
		return nil, err
	}

	return &Quote{ProductID: product.ID, Rate: rate, LineValuation: line}, nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

func validateProduct(p *entity.Product) error {
	var fieldErrors []apperror.FieldError

	if !p.UnitType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_type", Message: "Unknown unit type"})
	}
	if p.PurchasePriceUSD.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purchase_price_usd", Message: "Purchase price cannot be negative"})
	}
	if !p.SellingPriceUSD.IsPositive() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "selling_price_usd", Message: "Selling price must be greater than zero"})
	}
	if p.Stock.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if p.MinStock.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_stock", Message: "Minimum stock cannot be negative"})
	}
	if p.IsBulkPricing {
		if !p.BulkMinQuantity.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "bulk_min_quantity", Message: "Bulk minimum quantity must be greater than zero"})
		}
		if !p.BulkPriceUSD.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "bulk_price_usd", Message: "Bulk price must be greater than zero"})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// applyAdjustment returns the stock level after the movement
func applyAdjustment(product *entity.Product, kind enum.AdjustmentType, quantity decimal.Decimal) (decimal.Decimal, error) {
	if kind == enum.AdjustmentTypeSet {
		if quantity.IsNegative() {
			return decimal.Zero, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Stock cannot be negative"},
			})
		}
		if !quantity.IsZero() {
			if err := ValidateQuantity(product, quantity); err != nil {
				return decimal.Zero, err
			}
		}
		return quantity, nil
	}

	if err := ValidateQuantity(product, quantity); err != nil {
		return decimal.Zero, err
	}
	if kind == enum.AdjustmentTypeAdd {
		return product.Stock.Add(quantity), nil
	}

	if quantity.GreaterThan(product.Stock) {
		return decimal.Zero, apperror.NewInsufficientStockError(product.Name, quantity, product.Stock)
	}
	return product.Stock.Sub(quantity), nil
}
