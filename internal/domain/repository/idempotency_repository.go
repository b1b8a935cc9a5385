package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by client key and user
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create reserves a key before the request runs. It returns
	// apperror.ErrIdempotencyConflict when the key is already stored.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete stores the response of a reserved key.
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete releases a key so the client may retry with it.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes keys that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
