package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/pkg/apperror"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("date", "2024-02-29")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	if got, err := parseDate("date", ""); got != nil || err != nil {
		t.Errorf("empty value = %v, %v; want nil, nil", got, err)
	}

	for _, bad := range []string{"29/02/2024", "2024-13-01", "2024-02-29T10:00:00Z"} {
		_, err := parseDate("from", bad)
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("parseDate(%q) error = %v, want a validation error", bad, err)
		}
	}
}

func TestOptionalID(t *testing.T) {
	if id, ok := optionalID(""); id != nil || !ok {
		t.Errorf("empty = %v, %v", id, ok)
	}
	if _, ok := optionalID("nope"); ok {
		t.Error("expected invalid id to fail")
	}
	want := uuid.New()
	if id, ok := optionalID(want.String()); !ok || *id != want {
		t.Errorf("optionalID = %v, %v; want %s", id, ok, want)
	}
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetUserID(c) != nil {
		t.Error("expected nil without a user")
	}
	c.Set("user_id", "not-a-uuid")
	if GetUserID(c) != nil {
		t.Error("expected nil for a non-uuid value")
	}
	id := uuid.New()
	c.Set("user_id", id)
	if got := GetUserID(c); got == nil || *got != id {
		t.Errorf("GetUserID = %v, want %s", got, id)
	}
}
