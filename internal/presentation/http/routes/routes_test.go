package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/config"
	"github.com/sangkips/bodega-api/pkg/utils"
)

// The handlers are never reached: every request below stops in middleware.
func testRouter(jwt *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return Setup(&Handlers{}, &Deps{
		JWTManager: jwt,
		Cfg:        &config.Config{App: config.AppConfig{Name: "bodega-api"}},
	})
}

func TestProtectedRoutes(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, 24*time.Hour)
	r := testRouter(jwt)

	cashier, _ := jwt.GenerateAccessToken(uuid.New(), "cajera@bodega.test", []string{"cashier"},
		[]string{PermManageSales, PermManageCredits})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"sales need a token", http.MethodGet, "/api/v1/sales", "", http.StatusUnauthorized},
		{"expenses need their permission", http.MethodGet, "/api/v1/expenses", cashier, http.StatusForbidden},
		{"users are owner only", http.MethodGet, "/api/v1/users", cashier, http.StatusForbidden},
		{"rates are managed separately", http.MethodPost, "/api/v1/exchange-rates", cashier, http.StatusForbidden},
		{"checkout needs an idempotency key", http.MethodPost, "/api/v1/sales", cashier, http.StatusBadRequest},
		{"payments need an idempotency key", http.MethodPost, "/api/v1/credits/" + uuid.NewString() + "/payments", cashier, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}
