package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	domainRepo "github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"gorm.io/gorm"
)

type supplierOrderRepository struct {
	db *gorm.DB
}

// NewSupplierOrderRepository creates a new supplier order repository
func NewSupplierOrderRepository(db *gorm.DB) domainRepo.SupplierOrderRepository {
	return &supplierOrderRepository{db: db}
}

func (r *supplierOrderRepository) Create(ctx context.Context, order *entity.SupplierOrder) error {
	return conn(ctx, r.db).Omit("Supplier", "Items.Product").Create(order).Error
}

func (r *supplierOrderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	var order entity.SupplierOrder
	err := conn(ctx, r.db).
		Preload("Items.Product").
		Preload("Supplier").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *supplierOrderRepository) LockWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	db := conn(ctx, r.db)

	var order entity.SupplierOrder
	err := db.Clauses(forUpdate()).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.Where("supplier_order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *supplierOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SupplierOrderStatus, receivedAt *time.Time) error {
	return conn(ctx, r.db).Model(&entity.SupplierOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"received_at": receivedAt,
		}).Error
}

func (r *supplierOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.SupplierOrder{}).
		Where("id = ?", id).
		Update("paid", true).Error
}

func (r *supplierOrderRepository) List(ctx context.Context, params *domainRepo.SupplierOrderFilterParams) ([]entity.SupplierOrder, int64, error) {
	var orders []entity.SupplierOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.SupplierOrder{})

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}
