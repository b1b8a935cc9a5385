package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/application/service"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CreditHandler handles customer credit HTTP requests
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// List handles listing credits by customer and status
func (h *CreditHandler) List(c *gin.Context) {
	var filter request.CreditFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	customerID, ok := optionalID(filter.CustomerID)
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	params := &repository.CreditFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		CustomerID: customerID,
		Status:     filter.Status,
	}
	params.Pagination.Validate()

	result, err := h.creditService.ListCredits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Credits retrieved successfully", result)
}

// Get handles getting a credit with payments and balance
func (h *CreditHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid credit ID")
		return
	}

	credit, err := h.creditService.GetCredit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit retrieved successfully", credit)
}

// Balance returns the pending balance. An optional rate query value prices
// the Bs figure at that rate instead of today's.
func (h *CreditHandler) Balance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid credit ID")
		return
	}

	var asOfRate *decimal.Decimal
	if raw := c.Query("rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(c, "Invalid rate")
			return
		}
		asOfRate = &rate
	}

	balance, err := h.creditService.GetPendingBalance(c.Request.Context(), id, asOfRate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", balance)
}

// RecordPayment handles a payment in bolivares against a credit
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid credit ID")
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.creditService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		CreditID:      id,
		AmountBs:      req.AmountBs,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Notes:         req.Notes,
		ReceivedByID:  *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", result)
}
