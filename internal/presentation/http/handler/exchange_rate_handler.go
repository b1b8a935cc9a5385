package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/application/service"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/response"
)

// ExchangeRateHandler handles exchange rate HTTP requests
type ExchangeRateHandler struct {
	rateService *service.ExchangeRateService
}

// NewExchangeRateHandler creates a new exchange rate handler
func NewExchangeRateHandler(rateService *service.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rateService}
}

// Current returns the rate in force today
func (h *ExchangeRateHandler) Current(c *gin.Context) {
	rate, err := h.rateService.GetCurrentRate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rate retrieved successfully", rate)
}

// List handles listing stored rates, newest first
func (h *ExchangeRateHandler) List(c *gin.Context) {
	result, err := h.rateService.ListRates(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Exchange rates retrieved successfully", result)
}

// Set handles storing the rate for a date
func (h *ExchangeRateHandler) Set(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDatePtr("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	rate, err := h.rateService.SetRate(c.Request.Context(), &service.SetRateInput{
		Date:         date,
		RateBsPerUSD: req.RateBsPerUSD,
		SetByID:      *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rate saved successfully", rate)
}
