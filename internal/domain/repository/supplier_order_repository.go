package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/pkg/pagination"
)

// SupplierOrderRepository defines the interface for supplier order data operations
type SupplierOrderRepository interface {
	// Create stores the order together with its items.
	Create(ctx context.Context, order *entity.SupplierOrder) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error)
	// LockWithItems loads the order and its items with the order row locked
	// until the enclosing transaction ends.
	LockWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SupplierOrderStatus, receivedAt *time.Time) error
	MarkPaid(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SupplierOrderFilterParams) ([]entity.SupplierOrder, int64, error)
}

// SupplierOrderFilterParams contains filtering parameters for supplier order queries
type SupplierOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	SupplierID *uuid.UUID
	Status     *enum.SupplierOrderStatus
}
