package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func TestCloseDay(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "36.55")
	harina := env.addProduct(t, "Harina PAN", "1.25", "10", enum.UnitTypeUnit)
	ctx := context.Background()

	if _, err := env.sales.CreateSale(ctx, cashSale(env, SaleItemInput{ProductID: harina.ID, Quantity: dec("3")})); err != nil {
		t.Fatal(err)
	}
	// 23:00 local on the previous day belongs to the previous close
	env.store.sales[uuid.New()] = entity.Sale{
		TotalUSD:  dec("99"),
		TotalBs:   dec("3600"),
		CreatedAt: time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC),
	}

	if _, err := env.expenses.CreateExpense(ctx, &CreateExpenseInput{
		Category:    enum.ExpenseCategoryUtilities,
		Description: "Electricidad",
		AmountBs:    dec("365.50"),
		CreatedByID: env.userID,
	}); err != nil {
		t.Fatal(err)
	}

	closed, err := env.closes.CloseDay(ctx, &CloseDayInput{ClosedByID: env.userID})
	if err != nil {
		t.Fatalf("CloseDay: %v", err)
	}
	if !closed.Date.Equal(testToday()) || closed.SalesCount != 1 {
		t.Fatalf("unexpected close %+v", closed)
	}
	checks := []struct {
		field     string
		got, want decimal.Decimal
	}{
		{"sales usd", closed.SalesTotalUSD, dec("3.75")},
		{"sales bs", closed.SalesTotalBs, dec("137.06")},
		{"expenses usd", closed.ExpensesTotalUSD, dec("10")},
		{"expenses bs", closed.ExpensesTotalBs, dec("365.50")},
		{"profit usd", closed.ProfitUSD, dec("-6.25")},
		{"profit bs", closed.ProfitBs, dec("-228.44")},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.field, c.got, c.want)
		}
	}

	if _, err := env.closes.CloseDay(ctx, &CloseDayInput{ClosedByID: env.userID}); !errors.Is(err, apperror.ErrDuplicateDailyClose) {
		t.Errorf("second close: got %v, want ErrDuplicateDailyClose", err)
	}

	got, err := env.closes.GetDailyClose(ctx, testToday())
	if err != nil || got.ID != closed.ID {
		t.Errorf("GetDailyClose = %+v, %v", got, err)
	}
}

func TestCloseDayRejectsFutureDate(t *testing.T) {
	env := newTestEnv(t)
	tomorrow := testToday().AddDate(0, 0, 1)

	_, err := env.closes.CloseDay(context.Background(), &CloseDayInput{Date: &tomorrow, ClosedByID: env.userID})
	if apperror.GetAppError(err).Code != http.StatusUnprocessableEntity {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestConcurrentCloseDay(t *testing.T) {
	env := newTestEnv(t)

	const closers = 5
	errs := make([]error, closers)
	var wg sync.WaitGroup
	for i := 0; i < closers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.closes.CloseDay(context.Background(), &CloseDayInput{ClosedByID: env.userID})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrDuplicateDailyClose):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != closers-1 {
		t.Errorf("ok=%d duplicates=%d", ok, dup)
	}
	if len(env.store.closes) != 1 {
		t.Errorf("stored %d closes", len(env.store.closes))
	}
}

func TestCreateExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lastWeek := testToday().AddDate(0, 0, -7)
	env.setRate(t, lastWeek, "35")
	env.setRate(t, testToday(), "40")

	// dated expenses use the rate in force on their date
	expense, err := env.expenses.CreateExpense(ctx, &CreateExpenseInput{
		Category:    enum.ExpenseCategoryRent,
		Description: "Alquiler",
		AmountBs:    dec("3500"),
		Date:        &lastWeek,
		CreatedByID: env.userID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !expense.AmountUSD.Equal(dec("100")) || !expense.RateUsed.Equal(dec("35")) {
		t.Errorf("expense valued at %s USD, rate %s", expense.AmountUSD, expense.RateUsed)
	}

	_, err = env.expenses.CreateExpense(ctx, &CreateExpenseInput{
		Category:    "snacks",
		Description: "?",
		AmountBs:    dec("-1"),
		CreatedByID: env.userID,
	})
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusUnprocessableEntity || len(appErr.Errors) != 2 {
		t.Errorf("unexpected error %+v", appErr)
	}
}
