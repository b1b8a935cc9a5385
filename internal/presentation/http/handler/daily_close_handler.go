package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/bodega-api/internal/application/service"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/request"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/response"
)

// DailyCloseHandler handles end-of-day HTTP requests
type DailyCloseHandler struct {
	closeService *service.DailyCloseService
}

// NewDailyCloseHandler creates a new daily close handler
func NewDailyCloseHandler(closeService *service.DailyCloseService) *DailyCloseHandler {
	return &DailyCloseHandler{closeService: closeService}
}

// List handles listing closes, newest first
func (h *DailyCloseHandler) List(c *gin.Context) {
	result, err := h.closeService.ListDailyCloses(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Daily closes retrieved successfully", result)
}

// Create closes a business date
func (h *DailyCloseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseDayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	date, err := parseDatePtr("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	dailyClose, err := h.closeService.CloseDay(c.Request.Context(), &service.CloseDayInput{
		Date:       date,
		Notes:      req.Notes,
		ClosedByID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Day closed successfully", dailyClose)
}

// Get handles getting the close of a date
func (h *DailyCloseHandler) Get(c *gin.Context) {
	date, err := parseDate("date", c.Param("date"))
	if err != nil || date == nil {
		response.BadRequest(c, "Date must use the YYYY-MM-DD format")
		return
	}

	dailyClose, err := h.closeService.GetDailyClose(c.Request.Context(), *date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily close retrieved successfully", dailyClose)
}
