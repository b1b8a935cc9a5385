package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/pkg/apperror"
)

func TestCreateProductRecordsInitialStock(t *testing.T) {
	env := newTestEnv(t)

	product, err := env.products.CreateProduct(context.Background(), &CreateProductInput{
		UserID:          env.userID,
		Barcode:         "7591002000011",
		Name:            "Harina PAN",
		SellingPriceUSD: dec("1.25"),
		Stock:           dec("24"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if product.UnitType != enum.UnitTypeUnit || !product.MinStock.Equal(dec("5")) || !product.IsActive {
		t.Errorf("defaults not applied: %+v", product)
	}
	if len(env.store.adjustments) != 1 {
		t.Fatalf("expected an opening adjustment, got %d", len(env.store.adjustments))
	}
	adj := env.store.adjustments[0]
	if adj.Type != enum.AdjustmentTypeSet || !adj.NewStock.Equal(dec("24")) || adj.Reason != "Initial stock" {
		t.Errorf("unexpected adjustment %+v", adj)
	}

	_, err = env.products.CreateProduct(context.Background(), &CreateProductInput{
		Barcode:         "7591002000011",
		Name:            "Harina PAN",
		SellingPriceUSD: dec("1.25"),
	})
	if apperror.GetAppError(err).Code != http.StatusConflict {
		t.Errorf("duplicate barcode: got %v", err)
	}
}

func TestAdjustStock(t *testing.T) {
	tests := []struct {
		name      string
		unit      enum.UnitType
		kind      enum.AdjustmentType
		quantity  string
		wantStock string
		wantErr   error
		code      int
	}{
		{name: "add", unit: enum.UnitTypeUnit, kind: enum.AdjustmentTypeAdd, quantity: "4", wantStock: "14"},
		{name: "remove", unit: enum.UnitTypeUnit, kind: enum.AdjustmentTypeRemove, quantity: "4", wantStock: "6"},
		{name: "set to zero", unit: enum.UnitTypeUnit, kind: enum.AdjustmentTypeSet, quantity: "0", wantStock: "0"},
		{name: "fractional weight", unit: enum.UnitTypeKg, kind: enum.AdjustmentTypeRemove, quantity: "0.250", wantStock: "9.75"},
		{name: "remove too much", unit: enum.UnitTypeUnit, kind: enum.AdjustmentTypeRemove, quantity: "11", wantErr: apperror.ErrInsufficientStock},
		{name: "fractional unit", unit: enum.UnitTypeUnit, kind: enum.AdjustmentTypeAdd, quantity: "0.5", code: http.StatusUnprocessableEntity},
		{name: "unknown type", unit: enum.UnitTypeUnit, kind: "lost", quantity: "1", code: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			p := env.addProduct(t, "Producto", "1", "10", tt.unit)

			adj, err := env.products.AdjustStock(context.Background(), &AdjustStockInput{
				ProductID: p.ID,
				Type:      tt.kind,
				Quantity:  dec(tt.quantity),
				Reason:    "Conteo",
				UserID:    env.userID,
			})

			if tt.wantStock == "" {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
				if tt.code != 0 && apperror.GetAppError(err).Code != tt.code {
					t.Errorf("code = %d, want %d", apperror.GetAppError(err).Code, tt.code)
				}
				if got := env.stockOf(p.ID); !got.Equal(dec("10")) {
					t.Errorf("stock changed to %s", got)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			if got := env.stockOf(p.ID); !got.Equal(dec(tt.wantStock)) {
				t.Errorf("stock = %s, want %s", got, tt.wantStock)
			}
			if !adj.PreviousStock.Equal(dec("10")) || !adj.NewStock.Equal(dec(tt.wantStock)) {
				t.Errorf("adjustment %s -> %s", adj.PreviousStock, adj.NewStock)
			}
		})
	}
}

func TestQuoteLineItem(t *testing.T) {
	env := newTestEnv(t)
	p := env.addProduct(t, "Harina PAN", "1.25", "10", enum.UnitTypeUnit)
	ctx := context.Background()

	if _, err := env.products.QuoteLineItem(ctx, p.ID, dec("2")); !errors.Is(err, apperror.ErrNoExchangeRate) {
		t.Fatalf("got %v, want ErrNoExchangeRate", err)
	}

	env.setRate(t, testToday(), "36.55")
	quote, err := env.products.QuoteLineItem(ctx, p.ID, dec("3"))
	if err != nil {
		t.Fatal(err)
	}
	if !quote.LineTotalBs.Equal(dec("137.06")) || !quote.Rate.Equal(dec("36.55")) {
		t.Errorf("unexpected quote %+v", quote)
	}
	if got := env.stockOf(p.ID); !got.Equal(dec("10")) {
		t.Errorf("quoting changed stock to %s", got)
	}
}
