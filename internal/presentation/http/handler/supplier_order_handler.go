package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/application/service"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bodega-api/pkg/pagination"
)

// SupplierOrderHandler handles purchase order HTTP requests
type SupplierOrderHandler struct {
	orderService *service.SupplierOrderService
}

// NewSupplierOrderHandler creates a new supplier order handler
func NewSupplierOrderHandler(orderService *service.SupplierOrderService) *SupplierOrderHandler {
	return &SupplierOrderHandler{orderService: orderService}
}

// List handles listing supplier orders
func (h *SupplierOrderHandler) List(c *gin.Context) {
	var filter request.SupplierOrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	supplierID, ok := optionalID(filter.SupplierID)
	if !ok {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	params := &repository.SupplierOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		SupplierID: supplierID,
	}
	params.Pagination.Validate()

	if filter.Status != "" {
		status, ok := enum.ParseSupplierOrderStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Status must be pending, received or cancelled")
			return
		}
		params.Status = &status
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Supplier orders retrieved successfully", result)
}

// Create handles creating a pending supplier order
func (h *SupplierOrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSupplierOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.SupplierOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SupplierOrderItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitCostUSD: item.UnitCostUSD,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateSupplierOrderInput{
		SupplierID:  req.SupplierID,
		CreatedByID: *userID,
		Notes:       req.Notes,
		Items:       items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier order created successfully", order)
}

// Get handles getting a supplier order with its items
func (h *SupplierOrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier order retrieved successfully", order)
}

// Receive marks a pending order received and adds its items to stock
func (h *SupplierOrderHandler) Receive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	// The body is optional.
	var req request.ReceiveSupplierOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	order, err := h.orderService.ReceiveOrder(c.Request.Context(), &service.ReceiveOrderInput{
		OrderID:      id,
		UserID:       *userID,
		UpdatePrices: req.UpdatePrices,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier order received successfully", order)
}

// Cancel cancels a pending order
func (h *SupplierOrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier order cancelled successfully", order)
}

// Pay marks an order as paid to the supplier
func (h *SupplierOrderHandler) Pay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier order marked as paid", order)
}
