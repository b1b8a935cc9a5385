package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Snacks & Dulces", "snacks-dulces"},
		{"Charcutería y Quesos", "charcutera-y-quesos"},
		{"  Bebidas  ", "bebidas"},
		{"Limpieza -- Hogar", "limpieza-hogar"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateReferenceNo(t *testing.T) {
	ref := GenerateReferenceNo("SALE")
	if !strings.HasPrefix(ref, "SALE-") || len(ref) != len("SALE-")+8 {
		t.Fatalf("unexpected reference %q", ref)
	}
	if ref == GenerateReferenceNo("SALE") {
		t.Fatal("expected distinct references")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("cajero123")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("cajero123", hash) {
		t.Error("expected password to match")
	}
	if CheckPasswordHash("otra", hash) {
		t.Error("expected mismatch")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 2*time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "caja@bodega.test", []string{"cashier"}, []string{"manage-sales"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != id || claims.Permissions[0] != "manage-sales" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	refresh, err := m.GenerateRefreshToken(id)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.ValidateRefreshToken(refresh)
	if err != nil || got != id {
		t.Fatalf("refresh: got %v, %v", got, err)
	}

	other := NewJWTManager("other", time.Hour, time.Hour)
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected signature failure")
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	id := uuid.New()

	access, _ := m.GenerateAccessToken(id, "caja@bodega.test", nil, nil)
	refresh, _ := m.GenerateRefreshToken(id)

	if _, err := m.ValidateRefreshToken(access); err != ErrInvalidToken {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := m.ValidateAccessToken(refresh); err != ErrInvalidToken {
		t.Errorf("refresh token accepted as access: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "caja@bodega.test", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
