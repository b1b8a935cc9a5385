package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bodega-api/internal/domain/entity"
	"github.com/sangkips/bodega-api/internal/domain/enum"
	"github.com/sangkips/bodega-api/internal/domain/repository"
	"github.com/sangkips/bodega-api/pkg/apperror"
	"github.com/sangkips/bodega-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory database. Transactions run one at a time and
// restore a snapshot when fn fails, which is what row locks plus rollback
// give us on postgres for the flows under test.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	now  func() time.Time

	rates       map[string]entity.ExchangeRate
	products    map[uuid.UUID]entity.Product
	categories  map[uuid.UUID]entity.Category
	adjustments []entity.InventoryAdjustment
	customers   map[uuid.UUID]entity.Customer
	suppliers   map[uuid.UUID]entity.Supplier
	sales       map[uuid.UUID]entity.Sale
	credits     map[uuid.UUID]entity.CustomerCredit
	payments    []entity.CreditPayment
	orders      map[uuid.UUID]entity.SupplierOrder
	expenses    []entity.Expense
	closes      map[string]entity.DailyClose

	failAdjustmentCreate bool
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		now:        now,
		rates:      map[string]entity.ExchangeRate{},
		products:   map[uuid.UUID]entity.Product{},
		categories: map[uuid.UUID]entity.Category{},
		customers:  map[uuid.UUID]entity.Customer{},
		suppliers:  map[uuid.UUID]entity.Supplier{},
		sales:      map[uuid.UUID]entity.Sale{},
		credits:    map[uuid.UUID]entity.CustomerCredit{},
		orders:     map[uuid.UUID]entity.SupplierOrder{},
		closes:     map[string]entity.DailyClose{},
	}
}

type memSnapshot struct {
	rates       map[string]entity.ExchangeRate
	products    map[uuid.UUID]entity.Product
	adjustments []entity.InventoryAdjustment
	customers   map[uuid.UUID]entity.Customer
	sales       map[uuid.UUID]entity.Sale
	credits     map[uuid.UUID]entity.CustomerCredit
	payments    []entity.CreditPayment
	orders      map[uuid.UUID]entity.SupplierOrder
	expenses    []entity.Expense
	closes      map[string]entity.DailyClose
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		rates:       copyMap(s.rates),
		products:    copyMap(s.products),
		adjustments: append([]entity.InventoryAdjustment(nil), s.adjustments...),
		customers:   copyMap(s.customers),
		sales:       copyMap(s.sales),
		credits:     copyMap(s.credits),
		payments:    append([]entity.CreditPayment(nil), s.payments...),
		orders:      copyMap(s.orders),
		expenses:    append([]entity.Expense(nil), s.expenses...),
		closes:      copyMap(s.closes),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = snap.rates
	s.products = snap.products
	s.adjustments = snap.adjustments
	s.customers = snap.customers
	s.sales = snap.sales
	s.credits = snap.credits
	s.payments = snap.payments
	s.orders = snap.orders
	s.expenses = snap.expenses
	s.closes = snap.closes
}

type inTxKey struct{}

type memTransactor struct{ store *memStore }

func (t *memTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

// exchange rates

type memRateRepo struct{ store *memStore }

func (r *memRateRepo) Upsert(ctx context.Context, rate *entity.ExchangeRate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if existing, ok := r.store.rates[dateKey(rate.Date)]; ok {
		rate.ID = existing.ID
		rate.CreatedAt = existing.CreatedAt
	} else {
		rate.ID = uuid.New()
		rate.CreatedAt = r.store.now()
	}
	rate.UpdatedAt = r.store.now()
	r.store.rates[dateKey(rate.Date)] = *rate
	return nil
}

func (r *memRateRepo) GetByDate(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rate, ok := r.store.rates[dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &rate, nil
}

func (r *memRateRepo) GetLatest(ctx context.Context, asOf time.Time) (*entity.ExchangeRate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var best *entity.ExchangeRate
	for _, rate := range r.store.rates {
		if dateKey(rate.Date) > dateKey(asOf) {
			continue
		}
		if best == nil || rate.Date.After(best.Date) {
			rate := rate
			best = &rate
		}
	}
	return best, nil
}

func (r *memRateRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.ExchangeRate, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var rates []entity.ExchangeRate
	for _, rate := range r.store.rates {
		rates = append(rates, rate)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Date.After(rates[j].Date) })
	return rates, int64(len(rates)), nil
}

// products

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.store.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, p := range r.store.products {
		if !params.IncludeInactive && !p.IsActive {
			continue
		}
		if params.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *memProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.products[id]
	p.Stock = stock
	r.store.products[id] = p
	return nil
}

func (r *memProductRepo) UpdatePurchasePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.products[id]
	p.PurchasePriceUSD = price
	r.store.products[id] = p
	return nil
}

func (r *memProductRepo) CountLowStock(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, p := range r.store.products {
		if p.IsActive && p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

type memCategoryRepo struct{ store *memStore }

func (r *memCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c.ID = uuid.New()
	r.store.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Category
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	return out, nil
}

type memAdjustmentRepo struct{ store *memStore }

func (r *memAdjustmentRepo) Create(ctx context.Context, a *entity.InventoryAdjustment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAdjustmentCreate {
		return errInjected
	}
	a.ID = uuid.New()
	r.store.adjustments = append(r.store.adjustments, *a)
	return nil
}

func (r *memAdjustmentRepo) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.InventoryAdjustment, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.InventoryAdjustment
	for _, a := range r.store.adjustments {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

// customers and suppliers

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c.ID = uuid.New()
	r.store.customers[c.ID] = *c
	return nil
}

func (r *memCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customers[c.ID] = *c
	return nil
}

func (r *memCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Customer, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Customer
	for _, c := range r.store.customers {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

type memSupplierRepo struct{ store *memStore }

func (r *memSupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s.ID = uuid.New()
	r.store.suppliers[s.ID] = *s
	return nil
}

func (r *memSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memSupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.suppliers[s.ID] = *s
	return nil
}

func (r *memSupplierRepo) List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Supplier, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Supplier
	for _, s := range r.store.suppliers {
		if includeInactive || s.IsActive {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

// sales

type memSaleRepo struct{ store *memStore }

func (r *memSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sale.ID = uuid.New()
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = r.store.now()
	}
	for i := range sale.Items {
		sale.Items[i].ID = uuid.New()
		sale.Items[i].SaleID = sale.ID
	}
	stored := *sale
	stored.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.store.sales[sale.ID] = stored
	return nil
}

func (r *memSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sale, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	for _, c := range r.store.credits {
		if c.SaleID == id {
			c := c
			sale.Credit = &c
		}
	}
	return &sale, nil
}

func (r *memSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.store.sales {
		if params.IsCredit != nil && s.IsCredit != *params.IsCredit {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *memSaleRepo) Summarize(ctx context.Context, from, to time.Time) (*repository.SalesSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	summary := &repository.SalesSummary{TotalUSD: decimal.Zero, TotalBs: decimal.Zero}
	for _, s := range r.store.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		summary.Count++
		summary.TotalUSD = summary.TotalUSD.Add(s.TotalUSD)
		summary.TotalBs = summary.TotalBs.Add(s.TotalBs)
	}
	return summary, nil
}

// credits

type memCreditRepo struct{ store *memStore }

func (r *memCreditRepo) Create(ctx context.Context, c *entity.CustomerCredit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = r.store.now()
	r.store.credits[c.ID] = *c
	return nil
}

func (r *memCreditRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.credits[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCreditRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	return r.GetByID(ctx, id)
}

func (r *memCreditRepo) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.credits[id]
	if !ok {
		return nil, nil
	}
	for _, p := range r.store.payments {
		if p.CreditID == id {
			c.Payments = append(c.Payments, p)
		}
	}
	return &c, nil
}

func (r *memCreditRepo) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := r.store.credits[id]
	c.IsPaid = true
	c.PaidAt = &paidAt
	r.store.credits[id] = c
	return nil
}

func (r *memCreditRepo) List(ctx context.Context, params *repository.CreditFilterParams) ([]entity.CustomerCredit, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.CustomerCredit
	for _, c := range r.store.credits {
		if params.CustomerID != nil && c.CustomerID != *params.CustomerID {
			continue
		}
		switch params.Status {
		case repository.CreditStatusPending:
			if c.IsPaid {
				continue
			}
		case repository.CreditStatusPaid:
			if !c.IsPaid {
				continue
			}
		case repository.CreditStatusOverdue:
			if !c.IsOverdue(params.Today) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memCreditRepo) CreatePayment(ctx context.Context, p *entity.CreditPayment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p.ID = uuid.New()
	r.store.payments = append(r.store.payments, *p)
	return nil
}

func (r *memCreditRepo) sumLocked(creditID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.store.payments {
		if p.CreditID == creditID {
			sum = sum.Add(p.AmountUSD)
		}
	}
	return sum
}

func (r *memCreditRepo) SumPaymentsUSD(ctx context.Context, creditID uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.sumLocked(creditID), nil
}

func (r *memCreditRepo) UnpaidPrincipalUSD(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, c := range r.store.credits {
		if !c.IsPaid && c.CustomerID == customerID {
			total = total.Add(c.PrincipalUSD)
		}
	}
	return total, nil
}

func (r *memCreditRepo) OutstandingUSD(ctx context.Context, customerID *uuid.UUID) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	total := decimal.Zero
	for _, c := range r.store.credits {
		if c.IsPaid || (customerID != nil && c.CustomerID != *customerID) {
			continue
		}
		total = total.Add(c.PrincipalUSD.Sub(r.sumLocked(c.ID)))
	}
	return total, nil
}

func (r *memCreditRepo) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, c := range r.store.credits {
		if c.IsOverdue(today) {
			n++
		}
	}
	return n, nil
}

// supplier orders

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Create(ctx context.Context, o *entity.SupplierOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o.ID = uuid.New()
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].SupplierOrderID = o.ID
	}
	stored := *o
	stored.Items = append([]entity.SupplierOrderItem(nil), o.Items...)
	r.store.orders[o.ID] = stored
	return nil
}

func (r *memOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) LockWithItems(ctx context.Context, id uuid.UUID) (*entity.SupplierOrder, error) {
	return r.GetWithItems(ctx, id)
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SupplierOrderStatus, receivedAt *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o := r.store.orders[id]
	o.Status = status
	o.ReceivedAt = receivedAt
	r.store.orders[id] = o
	return nil
}

func (r *memOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o := r.store.orders[id]
	o.Paid = true
	r.store.orders[id] = o
	return nil
}

func (r *memOrderRepo) List(ctx context.Context, params *repository.SupplierOrderFilterParams) ([]entity.SupplierOrder, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.SupplierOrder
	for _, o := range r.store.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

// expenses and daily closes

type memExpenseRepo struct{ store *memStore }

func (r *memExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e.ID = uuid.New()
	r.store.expenses = append(r.store.expenses, *e)
	return nil
}

func (r *memExpenseRepo) List(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := append([]entity.Expense(nil), r.store.expenses...)
	return out, int64(len(out)), nil
}

func (r *memExpenseRepo) Summarize(ctx context.Context, from, to time.Time) (*repository.ExpenseSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	summary := &repository.ExpenseSummary{TotalUSD: decimal.Zero, TotalBs: decimal.Zero}
	for _, e := range r.store.expenses {
		if dateKey(e.Date) < dateKey(from) || dateKey(e.Date) > dateKey(to) {
			continue
		}
		summary.TotalUSD = summary.TotalUSD.Add(e.AmountUSD)
		summary.TotalBs = summary.TotalBs.Add(e.AmountBs)
	}
	return summary, nil
}

type memCloseRepo struct{ store *memStore }

func (r *memCloseRepo) Create(ctx context.Context, c *entity.DailyClose) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.closes[dateKey(c.Date)]; ok {
		return apperror.ErrDuplicateDailyClose
	}
	c.ID = uuid.New()
	r.store.closes[dateKey(c.Date)] = *c
	return nil
}

func (r *memCloseRepo) GetByDate(ctx context.Context, date time.Time) (*entity.DailyClose, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.closes[dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCloseRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.DailyClose, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.DailyClose
	for _, c := range r.store.closes {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

type memReportRepo struct{}

func (memReportRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	return []repository.TopProductResult{}, nil
}

func (memReportRepo) DailySales(ctx context.Context, from, to time.Time) ([]repository.DailySalesResult, error) {
	return []repository.DailySalesResult{}, nil
}

// testEnv wires every ledger service over one memStore
type testEnv struct {
	store    *memStore
	calendar *Calendar
	rates    *ExchangeRateService
	products *ProductService
	sales    *SaleService
	credits  *CreditService
	orders   *SupplierOrderService
	expenses *ExpenseService
	closes   *DailyCloseService
	custs    *CustomerService
	dash     *DashboardService
	userID   uuid.UUID
}

var testZone = time.FixedZone("VET", -4*60*60)

// testNow is 2026-03-10 15:00 in the store's zone
var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, testZone)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	calendar := NewCalendar(testZone)
	calendar.now = func() time.Time { return testNow }

	store := newMemStore(calendar.Now)
	tx := &memTransactor{store: store}

	rateRepo := &memRateRepo{store}
	productRepo := &memProductRepo{store}
	categoryRepo := &memCategoryRepo{store}
	adjustmentRepo := &memAdjustmentRepo{store}
	customerRepo := &memCustomerRepo{store}
	supplierRepo := &memSupplierRepo{store}
	saleRepo := &memSaleRepo{store}
	creditRepo := &memCreditRepo{store}
	orderRepo := &memOrderRepo{store}
	expenseRepo := &memExpenseRepo{store}
	closeRepo := &memCloseRepo{store}

	rates := NewExchangeRateService(rateRepo, calendar)
	return &testEnv{
		store:    store,
		calendar: calendar,
		rates:    rates,
		products: NewProductService(productRepo, categoryRepo, adjustmentRepo, tx, rates, calendar),
		sales:    NewSaleService(saleRepo, productRepo, adjustmentRepo, customerRepo, creditRepo, tx, rates, calendar, 30),
		credits:  NewCreditService(creditRepo, tx, rates, calendar),
		orders:   NewSupplierOrderService(orderRepo, supplierRepo, productRepo, adjustmentRepo, tx, rates, calendar),
		expenses: NewExpenseService(expenseRepo, rates, calendar),
		closes:   NewDailyCloseService(closeRepo, saleRepo, expenseRepo, tx, calendar),
		custs:    NewCustomerService(customerRepo, creditRepo, rates),
		dash:     NewDashboardService(saleRepo, creditRepo, productRepo, memReportRepo{}, rates, calendar),
		userID:   uuid.New(),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (e *testEnv) setRate(t *testing.T, date time.Time, rate string) {
	t.Helper()
	if _, err := e.rates.SetRate(context.Background(), &SetRateInput{
		Date:         &date,
		RateBsPerUSD: dec(rate),
		SetByID:      e.userID,
	}); err != nil {
		t.Fatalf("SetRate(%s): %v", rate, err)
	}
}

func (e *testEnv) addProduct(t *testing.T, name, price, stock string, unit enum.UnitType) *entity.Product {
	t.Helper()
	p := entity.Product{
		ID:              uuid.New(),
		Barcode:         name,
		Name:            name,
		UnitType:        unit,
		SellingPriceUSD: dec(price),
		Stock:           dec(stock),
		MinStock:        dec("1"),
		IsActive:        true,
	}
	e.store.products[p.ID] = p
	return &p
}

func (e *testEnv) addCustomer(t *testing.T, limit string) *entity.Customer {
	t.Helper()
	c := entity.Customer{ID: uuid.New(), Name: "Maria", CreditLimitUSD: dec(limit), IsActive: true}
	e.store.customers[c.ID] = c
	return &c
}

func (e *testEnv) stockOf(id uuid.UUID) decimal.Decimal {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	return e.store.products[id].Stock
}

func testToday() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}
