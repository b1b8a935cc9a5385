package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey records the response to a retried write such as a checkout
// or a credit payment, so a replay returns the original result instead of
// charging twice.
type IdempotencyKey struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key    string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_user_key"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	// Endpoint is the method and route template, e.g. "POST /api/v1/sales".
	Endpoint string `gorm:"size:255;not null"`
	// RequestHash is the hex SHA-256 of the request body.
	RequestHash  string    `gorm:"size:64;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Matches reports whether a retry targets the same endpoint with the same body
func (i *IdempotencyKey) Matches(endpoint, requestHash string) bool {
	return i.Endpoint == endpoint && i.RequestHash == requestHash
}
