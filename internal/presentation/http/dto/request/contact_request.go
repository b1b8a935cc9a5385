package request

import "github.com/shopspring/decimal"

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name           string          `json:"name" binding:"required,min=2,max=255"`
	Phone          *string         `json:"phone" binding:"omitempty,max=50"`
	Email          *string         `json:"email" binding:"omitempty,email"`
	Address        *string         `json:"address"`
	CreditLimitUSD decimal.Decimal `json:"credit_limit_usd"`
	Notes          *string         `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Phone          *string          `json:"phone" binding:"omitempty,max=50"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Address        *string          `json:"address"`
	CreditLimitUSD *decimal.Decimal `json:"credit_limit_usd"`
	Notes          *string          `json:"notes"`
	IsActive       *bool            `json:"is_active"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}
