package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/pkg/utils"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func protectedRouter(jwt *utils.JWTManager, permissions ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sales", AuthMiddleware(jwt), RequirePermission(permissions...), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.String(http.StatusOK, userID.(uuid.UUID).String())
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	r := protectedRouter(jwt, "manage-credits", "manage-sales")

	cashier, _ := jwt.GenerateAccessToken(userID, "cajera@bodega.test", []string{"cashier"}, []string{"manage-sales"})
	viewer, _ := jwt.GenerateAccessToken(uuid.New(), "viewer@bodega.test", nil, []string{"view-dashboard"})
	refresh, _ := jwt.GenerateRefreshToken(userID)
	foreign, _ := utils.NewJWTManager("other", time.Hour, time.Hour).
		GenerateAccessToken(userID, "x@bodega.test", nil, []string{"manage-sales"})

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
		{"refresh token", refresh, http.StatusUnauthorized},
		{"wrong secret", foreign, http.StatusUnauthorized},
		{"missing permission", viewer, http.StatusForbidden},
		{"any permission matches", cashier, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.token)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != userID.String() {
				t.Errorf("user_id = %s, want %s", w.Body, userID)
			}
		})
	}
}

func TestRequirePermissionWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sales", RequirePermission("manage-sales"), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := get(r, ""); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}
