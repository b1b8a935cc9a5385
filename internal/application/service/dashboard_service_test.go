package service

import (
	"context"
	"testing"

	"github.com/sangkips/bodega-api/internal/domain/enum"
)

func TestDashboardWithoutRate(t *testing.T) {
	env := newTestEnv(t)
	env.addCredit(t, env.addCustomer(t, "500"), "100")

	stats, err := env.dash.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("dashboard should load without a rate: %v", err)
	}
	if stats.Rate != nil || stats.OutstandingBs != nil {
		t.Errorf("expected no Bs figures, got rate %v bs %v", stats.Rate, stats.OutstandingBs)
	}
	if !stats.OutstandingUSD.Equal(dec("100")) {
		t.Errorf("outstanding = %s", stats.OutstandingUSD)
	}
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	harina := env.addProduct(t, "Harina PAN", "1.25", "10", enum.UnitTypeUnit)
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

	stored := env.store.credits[credit.ID]
	stored.DueDate = testToday().AddDate(0, 0, -3)
	env.store.credits[credit.ID] = stored

	if _, err := env.pay(credit.ID, "1800"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.sales.CreateSale(context.Background(), cashSale(env, SaleItemInput{ProductID: harina.ID, Quantity: dec("9")})); err != nil {
		t.Fatal(err)
	}

	stats, err := env.dash.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TodaySalesCount != 1 || !stats.TodaySalesUSD.Equal(dec("11.25")) || !stats.TodaySalesBs.Equal(dec("450")) {
		t.Errorf("today's sales %d / %s / %s", stats.TodaySalesCount, stats.TodaySalesUSD, stats.TodaySalesBs)
	}
	if !stats.OutstandingUSD.Equal(dec("55")) || stats.OutstandingBs == nil || !stats.OutstandingBs.Equal(dec("2200")) {
		t.Errorf("outstanding %s USD / %v Bs", stats.OutstandingUSD, stats.OutstandingBs)
	}
	if stats.OverdueCredits != 1 || stats.LowStockCount != 1 {
		t.Errorf("overdue=%d lowStock=%d", stats.OverdueCredits, stats.LowStockCount)
	}
}
