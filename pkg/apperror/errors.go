package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// AppError represents an application error with HTTP status code.
// Reason is a stable machine-readable kind; two AppErrors with the same
// non-empty Reason match under errors.Is.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Reason  string       `json:"reason,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target carries the same reason.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Reason == "" || t.Reason == "" {
		return e == t
	}
	return e.Reason == t.Reason
}

// Reasons
const (
	ReasonNoExchangeRate      = "no_exchange_rate"
	ReasonInvalidRate         = "invalid_rate"
	ReasonInsufficientStock   = "insufficient_stock"
	ReasonOverpayment         = "overpayment"
	ReasonDuplicateDailyClose = "duplicate_daily_close"
	ReasonCreditLimitExceeded = "credit_limit_exceeded"
	ReasonCreditAlreadyPaid   = "credit_already_paid"
	ReasonInvalidOrderState   = "invalid_order_state"
	ReasonIdempotencyReplay   = "idempotency_key_in_use"
	ReasonIdempotencyMismatch = "idempotency_key_reused"
)

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Ledger errors
var (
	// ErrNoExchangeRate is the configuration error raised when no rate exists
	// on or before the requested date. Nothing can be valued without one.
	ErrNoExchangeRate = &AppError{
		Code:    http.StatusConflict,
		Message: "No exchange rate configured",
		Reason:  ReasonNoExchangeRate,
	}
	ErrInvalidRate = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Exchange rate must be greater than zero",
		Reason:  ReasonInvalidRate,
	}
	ErrInsufficientStock = &AppError{
		Code:    http.StatusConflict,
		Message: "Insufficient stock",
		Reason:  ReasonInsufficientStock,
	}
	ErrOverpayment = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Payment exceeds pending balance",
		Reason:  ReasonOverpayment,
	}
	ErrDuplicateDailyClose = &AppError{
		Code:    http.StatusConflict,
		Message: "Daily close already exists for this date",
		Reason:  ReasonDuplicateDailyClose,
	}
	ErrCreditLimitExceeded = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Customer credit limit exceeded",
		Reason:  ReasonCreditLimitExceeded,
	}
	ErrCreditAlreadyPaid = &AppError{
		Code:    http.StatusConflict,
		Message: "Credit is already paid",
		Reason:  ReasonCreditAlreadyPaid,
	}
	ErrInvalidOrderState = &AppError{
		Code:    http.StatusConflict,
		Message: "Supplier order is not pending",
		Reason:  ReasonInvalidOrderState,
	}
)

// Idempotency errors
var (
	ErrIdempotencyKeyRequired = &AppError{
		Code:    http.StatusBadRequest,
		Message: "Idempotency-Key header is required for this request",
	}
	// ErrIdempotencyConflict means the first request with the key has not
	// finished yet.
	ErrIdempotencyConflict = &AppError{
		Code:    http.StatusConflict,
		Message: "A request with this Idempotency-Key is still being processed",
		Reason:  ReasonIdempotencyReplay,
	}
	ErrIdempotencyMismatch = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Idempotency-Key was used with a different request",
		Reason:  ReasonIdempotencyMismatch,
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInsufficientStockError names the product and the quantities involved.
func NewInsufficientStockError(product string, requested, available decimal.Decimal) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("Insufficient stock for %s: requested %s, available %s", product, requested.String(), available.String()),
		Reason:  ReasonInsufficientStock,
	}
}

// NewOverpaymentError reports the converted amount against the pending balance.
func NewOverpaymentError(amountUSD, pendingUSD decimal.Decimal) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Payment of %s USD exceeds pending balance of %s USD", amountUSD.StringFixed(2), pendingUSD.StringFixed(2)),
		Reason:  ReasonOverpayment,
	}
}

// NewCreditLimitExceededError reports the sale total against available credit.
func NewCreditLimitExceededError(totalUSD, availableUSD decimal.Decimal) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Sale total %s USD exceeds available credit %s USD", totalUSD.StringFixed(2), availableUSD.StringFixed(2)),
		Reason:  ReasonCreditLimitExceeded,
	}
}

// NewNoExchangeRateError names the date that had no rate in force.
func NewNoExchangeRateError(asOf string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: "No exchange rate configured on or before " + asOf,
		Reason:  ReasonNoExchangeRate,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
