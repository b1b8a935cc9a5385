package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerCredit is the receivable opened by a credit sale. PrincipalUSD is
// fixed at creation and is the only source of truth for the balance; any Bs
// figure is derived from whichever rate the caller supplies.
type CustomerCredit struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	SaleID             uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"sale_id"`
	PrincipalUSD       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal_usd"`
	RateUsedAtCreation decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"rate_used_at_creation"`
	DueDate            time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	IsPaid             bool            `gorm:"default:false;index" json:"is_paid"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Payments []CreditPayment `gorm:"foreignKey:CreditID" json:"payments,omitempty"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new credit
func (c *CustomerCredit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerCredit model
func (CustomerCredit) TableName() string {
	return "customer_credits"
}

// IsOverdue reports whether the credit is unpaid past its due date
func (c *CustomerCredit) IsOverdue(today time.Time) bool {
	return !c.IsPaid && c.DueDate.Before(today)
}

// CreditPayment is money received against a credit. AmountBs is what the
// debtor handed over; AmountUSD is its value at the payment-time rate.
type CreditPayment struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CreditID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"credit_id"`
	AmountBs          decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"amount_bs"`
	RateUsedAtPayment decimal.Decimal    `gorm:"type:decimal(12,4);not null" json:"rate_used_at_payment"`
	AmountUSD         decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"amount_usd"`
	PaymentMethod     enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Reference         *string            `gorm:"size:100" json:"reference,omitempty"`
	Notes             *string            `gorm:"type:text" json:"notes,omitempty"`
	ReceivedByID      uuid.UUID          `gorm:"type:uuid;not null" json:"received_by_id"`
	PaidAt            time.Time          `gorm:"not null;index" json:"paid_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *CreditPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditPayment model
func (CreditPayment) TableName() string {
	return "credit_payments"
}
