package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/internal/presentation/http/dto/response"
	"github.com/sangkips/bodega-api/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader is set on responses served from a stored key
	ReplayedHeader = "X-Idempotency-Replayed"
	// DefaultIdempotencyTTL is how long keys are valid
	DefaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	// Required rejects writes that carry no key.
	Required bool
	Now      func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes a write safe to retry. The first request with a key is
// reserved before the handler runs and its 2xx response is stored; later
// requests with the same key and body get that response back. A key reused
// with a different body is rejected, as is one whose first request is still
// running. Failed responses release the key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultIdempotencyTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if cfg.Required {
				response.Error(c, apperror.ErrIdempotencyKeyRequired)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		userIDValue, _ := c.Get("user_id")
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Invalid request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.FullPath()
		ctx := c.Request.Context()
		now := cfg.Now()

		existing, err := cfg.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			log.Printf("Idempotency lookup failed for key %s: %v", key, err)
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && existing.IsExpired(now) {
			if err := cfg.Repo.Delete(ctx, existing.ID); err != nil {
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			existing = nil
		}
		if existing != nil {
			switch {
			case !existing.Matches(endpoint, requestHash):
				response.Error(c, apperror.ErrIdempotencyMismatch)
			case existing.ResponseCode == 0:
				response.Error(c, apperror.ErrIdempotencyConflict)
			default:
				c.Header(ReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			}
			c.Abort()
			return
		}

		reserved := &entity.IdempotencyKey{
			ID:          uuid.New(),
			Key:         key,
			UserID:      userID,
			Endpoint:    endpoint,
			RequestHash: requestHash,
			ExpiresAt:   now.Add(cfg.TTL),
		}
		if err := cfg.Repo.Create(ctx, reserved); err != nil {
			if errors.Is(err, apperror.ErrIdempotencyConflict) {
				response.Error(c, err)
			} else {
				response.InternalServerError(c, "Failed to store idempotency key")
			}
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// The outcome is recorded even if the client went away.
		storeCtx := context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			reserved.ResponseCode = status
			reserved.ResponseBody = blw.body.String()
			if err := cfg.Repo.Complete(storeCtx, reserved); err != nil {
				log.Printf("Failed to store response for idempotency key %s: %v", key, err)
			}
			return
		}
		if err := cfg.Repo.Delete(storeCtx, reserved.ID); err != nil {
			log.Printf("Failed to release idempotency key %s: %v", key, err)
		}
	}
}
