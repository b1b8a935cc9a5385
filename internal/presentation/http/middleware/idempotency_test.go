package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/pkg/apperror"
)

type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: map[string]entity.IdempotencyKey{}}
}

func repoKey(key string, userID uuid.UUID) string { return userID.String() + "/" + key }

func (r *memIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[repoKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := repoKey(ikey.Key, ikey.UserID)
	if _, ok := r.keys[k]; ok {
		return apperror.ErrIdempotencyConflict
	}
	r.keys[k] = *ikey
	return nil
}

func (r *memIdempotencyRepo) Complete(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[repoKey(ikey.Key, ikey.UserID)] = *ikey
	return nil
}

func (r *memIdempotencyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.keys {
		if v.ID == id {
			delete(r.keys, k)
		}
	}
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.keys {
		if v.IsExpired(now) {
			delete(r.keys, k)
			n++
		}
	}
	return n, nil
}

// idempotentRouter counts handler runs. The handler answers with status.
func idempotentRouter(repo *memIdempotencyRepo, userID uuid.UUID, status *int, runs *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/sales", Idempotency(IdempotencyConfig{Repo: repo, Required: true}), func(c *gin.Context) {
		*runs++
		c.JSON(*status, gin.H{"run": *runs})
	})
	return r
}

func post(r http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	repo := newMemIdempotencyRepo()
	status, runs := http.StatusCreated, 0
	r := idempotentRouter(repo, uuid.New(), &status, &runs)

	first := post(r, "k1", `{"items":[1]}`)
	second := post(r, "k1", `{"items":[1]}`)

	if runs != 1 {
		t.Fatalf("handler ran %d times, want 1", runs)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s, want %d %s", second.Code, second.Body, first.Code, first.Body)
	}
	if second.Header().Get(ReplayedHeader) != "true" {
		t.Error("expected replay header")
	}
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	repo := newMemIdempotencyRepo()
	status, runs := http.StatusCreated, 0
	r := idempotentRouter(repo, uuid.New(), &status, &runs)

	post(r, "k1", `{"items":[1]}`)
	w := post(r, "k1", `{"items":[2]}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
	if runs != 1 {
		t.Errorf("handler ran %d times, want 1", runs)
	}
}

func TestIdempotencyReleasesKeyOnFailure(t *testing.T) {
	repo := newMemIdempotencyRepo()
	status, runs := http.StatusConflict, 0
	r := idempotentRouter(repo, uuid.New(), &status, &runs)

	post(r, "k1", `{}`)
	status = http.StatusCreated
	w := post(r, "k1", `{}`)

	if runs != 2 || w.Code != http.StatusCreated {
		t.Errorf("runs = %d status = %d, want a fresh run after a failure", runs, w.Code)
	}
}

func TestIdempotencyInFlightKey(t *testing.T) {
	repo := newMemIdempotencyRepo()
	userID := uuid.New()
	status, runs := http.StatusCreated, 0
	r := idempotentRouter(repo, userID, &status, &runs)

	// a reservation with no response yet
	repo.keys[repoKey("k1", userID)] = entity.IdempotencyKey{
		ID:          uuid.New(),
		Key:         "k1",
		UserID:      userID,
		Endpoint:    "POST /sales",
		RequestHash: "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a", // sha256("{}")
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	w := post(r, "k1", `{}`)
	if w.Code != http.StatusConflict || runs != 0 {
		t.Errorf("status = %d runs = %d, want 409 and no run", w.Code, runs)
	}
}

func TestIdempotencyExpiredKeyRunsAgain(t *testing.T) {
	repo := newMemIdempotencyRepo()
	userID := uuid.New()
	status, runs := http.StatusCreated, 0
	r := idempotentRouter(repo, userID, &status, &runs)

	post(r, "k1", `{}`)
	k := repoKey("k1", userID)
	stale := repo.keys[k]
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	repo.keys[k] = stale

	post(r, "k1", `{}`)
	if runs != 2 {
		t.Errorf("handler ran %d times, want 2", runs)
	}
}

func TestIdempotencyKeyRequired(t *testing.T) {
	status, runs := http.StatusCreated, 0
	r := idempotentRouter(newMemIdempotencyRepo(), uuid.New(), &status, &runs)

	w := post(r, "", `{}`)
	if w.Code != http.StatusBadRequest || runs != 0 {
		t.Errorf("status = %d runs = %d, want 400 and no run", w.Code, runs)
	}
}

func TestIdempotencyKeysAreScopedPerUser(t *testing.T) {
	repo := newMemIdempotencyRepo()
	status, runs := http.StatusCreated, 0

	post(idempotentRouter(repo, uuid.New(), &status, &runs), "k1", `{}`)
	post(idempotentRouter(repo, uuid.New(), &status, &runs), "k1", `{}`)

	if runs != 2 {
		t.Errorf("handler ran %d times, want 2", runs)
	}
}
