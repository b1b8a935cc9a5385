package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func (e *testEnv) addCredit(t *testing.T, customer *entity.Customer, principal string) *entity.CustomerCredit {
	t.Helper()
	c := entity.CustomerCredit{
		ID:                 uuid.New(),
		CustomerID:         customer.ID,
		SaleID:             uuid.New(),
		PrincipalUSD:       dec(principal),
		RateUsedAtCreation: dec("36"),
		DueDate:            testToday().AddDate(0, 0, 30),
	}
	e.store.credits[c.ID] = c
	return &c
}

func (e *testEnv) pay(creditID uuid.UUID, bs string) (*PaymentResult, error) {
	return e.credits.RecordPayment(context.Background(), &RecordPaymentInput{
		CreditID:      creditID,
		AmountBs:      dec(bs),
		PaymentMethod: enum.PaymentMethodMobile,
		ReceivedByID:  e.userID,
	})
}

func TestPendingBalance(t *testing.T) {
	tests := []struct {
		name            string
		principal, paid string
		rate            string
		wantUSD, wantBs string
	}{
		{"nothing paid", "100", "0", "40", "100", "4000"},
		{"partly paid", "100", "45", "40", "55", "2200"},
		{"fully paid", "100", "100", "40", "0", "0"},
		{"cents", "3.75", "1.10", "36.55", "2.65", "96.86"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := PendingBalance(dec(tt.principal), dec(tt.paid), dec(tt.rate))
			if err != nil {
				t.Fatal(err)
			}
			if !b.PendingUSD.Equal(dec(tt.wantUSD)) || !b.PendingBs.Equal(dec(tt.wantBs)) {
				t.Errorf("pending %s USD / %s Bs, want %s / %s", b.PendingUSD, b.PendingBs, tt.wantUSD, tt.wantBs)
			}
		})
	}

	if _, err := PendingBalance(dec("100"), decimal.Zero, decimal.Zero); !errors.Is(err, apperror.ErrInvalidRate) {
		t.Errorf("zero rate: got %v, want ErrInvalidRate", err)
	}
}

func TestRecordPaymentSettlement(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

	first, err := env.pay(credit.ID, "1800")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if !first.Payment.AmountUSD.Equal(dec("45")) || !first.Payment.RateUsedAtPayment.Equal(dec("40")) {
		t.Errorf("payment %+v", first.Payment)
	}
	if !first.Balance.PendingUSD.Equal(dec("55")) || !first.Balance.PendingBs.Equal(dec("2200")) {
		t.Errorf("pending %s USD / %s Bs, want 55 / 2200", first.Balance.PendingUSD, first.Balance.PendingBs)
	}
	if first.Credit.IsPaid {
		t.Fatal("credit settled early")
	}

	second, err := env.pay(credit.ID, "2200")
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if !second.Balance.PendingUSD.IsZero() || !second.Credit.IsPaid || second.Credit.PaidAt == nil {
		t.Errorf("credit not settled: %+v balance %+v", second.Credit, second.Balance)
	}
	if stored := env.store.credits[credit.ID]; !stored.IsPaid {
		t.Error("settlement not stored")
	}

	if _, err := env.pay(credit.ID, "10"); !errors.Is(err, apperror.ErrCreditAlreadyPaid) {
		t.Errorf("payment on settled credit: got %v, want ErrCreditAlreadyPaid", err)
	}
}

func TestRecordPaymentAtChangedRate(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

	if _, err := env.pay(credit.ID, "1800"); err != nil {
		t.Fatal(err)
	}

	// the bolivar weakens; the 55 USD still owed now costs more Bs
	env.setRate(t, testToday(), "50")
	bal, err := env.credits.GetPendingBalance(context.Background(), credit.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.PendingUSD.Equal(dec("55")) || !bal.PendingBs.Equal(dec("2750")) {
		t.Fatalf("pending %s USD / %s Bs, want 55 / 2750", bal.PendingUSD, bal.PendingBs)
	}

	res, err := env.pay(credit.ID, "2750")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Credit.IsPaid {
		t.Error("credit should be settled")
	}
}

func TestRecordPaymentRejects(t *testing.T) {
	tests := []struct {
		name    string
		bs      string
		wantErr error
		code    int
	}{
		{name: "overpayment", bs: "4400.40", wantErr: apperror.ErrOverpayment},
		{name: "worth less than a cent", bs: "0.10", code: http.StatusUnprocessableEntity},
		{name: "zero", bs: "0", code: http.StatusUnprocessableEntity},
		{name: "negative", bs: "-100", code: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.setRate(t, testToday(), "40")
			credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

			_, err := env.pay(credit.ID, tt.bs)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if tt.code != 0 && apperror.GetAppError(err).Code != tt.code {
				t.Errorf("code = %d, want %d", apperror.GetAppError(err).Code, tt.code)
			}

			if len(env.store.payments) != 0 {
				t.Error("rejected payment was stored")
			}
			if env.store.credits[credit.ID].IsPaid {
				t.Error("credit changed")
			}
		})
	}
}

func TestRecordPaymentUnknownCredit(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")

	_, err := env.pay(uuid.New(), "100")
	if apperror.GetAppError(err).Code != http.StatusNotFound {
		t.Errorf("got %v, want not found", err)
	}
}

func TestRecordPaymentWithoutRate(t *testing.T) {
	env := newTestEnv(t)
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

	if _, err := env.pay(credit.ID, "100"); !errors.Is(err, apperror.ErrNoExchangeRate) {
		t.Errorf("got %v, want ErrNoExchangeRate", err)
	}
}

func TestConcurrentPaymentsCannotOverpay(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")

	// each is 75 USD; only one fits under the 100 principal
	const payers = 2
	errs := make([]error, payers)
	var wg sync.WaitGroup
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.pay(credit.ID, "3000")
		}(i)
	}
	wg.Wait()

	var ok, over int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrOverpayment):
			over++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || over != 1 {
		t.Errorf("ok=%d over=%d, want 1 and 1", ok, over)
	}
	if len(env.store.payments) != 1 {
		t.Errorf("stored %d payments, want 1", len(env.store.payments))
	}
}

func TestGetPendingBalanceDoesNotWrite(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	credit := env.addCredit(t, env.addCustomer(t, "500"), "100")
	if _, err := env.pay(credit.ID, "1800"); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	first, err := env.credits.GetPendingBalance(ctx, credit.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.credits.GetPendingBalance(ctx, credit.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !first.PendingUSD.Equal(second.PendingUSD) || !first.PendingBs.Equal(second.PendingBs) {
		t.Errorf("balance changed between reads: %+v then %+v", first, second)
	}
	if len(env.store.payments) != 1 || env.store.credits[credit.ID].IsPaid {
		t.Error("reading the balance wrote to the ledger")
	}

	asOf := dec("36")
	quoted, err := env.credits.GetPendingBalance(ctx, credit.ID, &asOf)
	if err != nil {
		t.Fatal(err)
	}
	if !quoted.PendingBs.Equal(dec("1980")) || !quoted.Rate.Equal(asOf) {
		t.Errorf("balance at 36 = %+v", quoted)
	}
}

func TestGetCreditAndList(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	maria := env.addCustomer(t, "500")
	open := env.addCredit(t, maria, "100")
	late := env.addCredit(t, maria, "20")

	stored := env.store.credits[late.ID]
	stored.DueDate = testToday().AddDate(0, 0, -1)
	env.store.credits[late.ID] = stored

	if _, err := env.pay(open.ID, "1800"); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	detail, err := env.credits.GetCredit(ctx, open.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Payments) != 1 || detail.IsOverdue || !detail.Balance.PendingUSD.Equal(dec("55")) {
		t.Errorf("unexpected detail %+v", detail)
	}

	overdue, err := env.credits.ListCredits(ctx, &repository.CreditFilterParams{Status: repository.CreditStatusOverdue})
	if err != nil {
		t.Fatal(err)
	}
	if len(overdue.Items) != 1 || overdue.Items[0].ID != late.ID {
		t.Errorf("overdue = %+v", overdue.Items)
	}

	if _, err := env.credits.ListCredits(ctx, &repository.CreditFilterParams{Status: "late"}); apperror.GetAppError(err).Code != http.StatusBadRequest {
		t.Errorf("unknown status: got %v", err)
	}
}

func TestCustomerCreditSummary(t *testing.T) {
	env := newTestEnv(t)
	env.setRate(t, testToday(), "40")
	maria := env.addCustomer(t, "100")
	credit := env.addCredit(t, maria, "70")
	if _, err := env.pay(credit.ID, "600"); err != nil {
		t.Fatal(err)
	}

	summary, err := env.custs.GetCreditSummary(context.Background(), maria.ID)
	if err != nil {
		t.Fatal(err)
	}
	// the 15 USD paid does not free credit: 70 of the 100 limit stays used
	if !summary.UsedUSD.Equal(dec("70")) || !summary.AvailableUSD.Equal(dec("30")) || !summary.AvailableBs.Equal(dec("1200")) {
		t.Errorf("unexpected summary %+v", summary)
	}
}
