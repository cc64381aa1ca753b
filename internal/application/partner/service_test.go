package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
	seq       int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	for _, c := range f.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepo) FindByPhone(_ context.Context, phone string) (*partner.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[partner.Customer], error) {
	return nil, nil
}

func (f *fakeCustomerRepo) Save(_ context.Context, c *partner.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) NextCodeSequence(_ context.Context) (int64, error) {
	f.seq++
	return f.seq, nil
}

func (f *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

type fakeVendorRepo struct {
	vendors map[uuid.UUID]*partner.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uuid.UUID]*partner.Vendor)}
}

func (f *fakeVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (f *fakeVendorRepo) FindByName(_ context.Context, name string) (*partner.Vendor, error) {
	for _, v := range f.vendors {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeVendorRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	return nil, nil
}

func (f *fakeVendorRepo) FindWithOutstanding(_ context.Context) ([]*partner.Vendor, error) {
	var out []*partner.Vendor
	for _, v := range f.vendors {
		if v.OutstandingBalance.IsPositive() {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendorRepo) Save(_ context.Context, v *partner.Vendor) error {
	f.vendors[v.ID] = v
	return nil
}

func (f *fakeVendorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.vendors, id)
	return nil
}

func (f *fakeVendorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.vendors)), nil
}

type fakeSaleHistory struct {
	sales []*trade.Sale
}

func (f *fakeSaleHistory) FindByID(_ context.Context, _ uuid.UUID) (*trade.Sale, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeSaleHistory) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[trade.Sale], error) {
	return nil, nil
}

func (f *fakeSaleHistory) FindByDateRange(_ context.Context, _, _ time.Time) ([]*trade.Sale, error) {
	return f.sales, nil
}

func (f *fakeSaleHistory) FindByCustomer(_ context.Context, _ uuid.UUID, _ shared.Filter) (*shared.Paginated[trade.Sale], error) {
	return nil, nil
}

func (f *fakeSaleHistory) Save(_ context.Context, s *trade.Sale) error {
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeSaleHistory) Count(_ context.Context) (int64, error) {
	return int64(len(f.sales)), nil
}

type fakeBillHistory struct {
	bills []*trade.Bill
}

func (f *fakeBillHistory) FindByID(_ context.Context, _ uuid.UUID) (*trade.Bill, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeBillHistory) FindByNumber(_ context.Context, _ string) (*trade.Bill, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeBillHistory) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[trade.Bill], error) {
	return nil, nil
}

func (f *fakeBillHistory) FindByDateRange(_ context.Context, _, _ time.Time) ([]*trade.Bill, error) {
	return f.bills, nil
}

func (f *fakeBillHistory) Save(_ context.Context, b *trade.Bill) error {
	f.bills = append(f.bills, b)
	return nil
}

func (f *fakeBillHistory) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeBillHistory) NextDailySequence(_ context.Context, _ time.Time) (int64, error) {
	return 1, nil
}

func (f *fakeBillHistory) Count(_ context.Context) (int64, error) {
	return int64(len(f.bills)), nil
}

func newTestService(customers *fakeCustomerRepo, vendors *fakeVendorRepo, sales *fakeSaleHistory, bills *fakeBillHistory) *Service {
	return NewService(customers, vendors, sales, bills, zap.NewNop())
}

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential codes", func(t *testing.T) {
		svc := newTestService(newFakeCustomerRepo(), newFakeVendorRepo(), &fakeSaleHistory{}, &fakeBillHistory{})

		first, err := svc.RegisterCustomer(ctx, "Asha Patel", "9876500001")
		require.NoError(t, err)
		second, err := svc.RegisterCustomer(ctx, "Ravi Kumar", "9876500002")
		require.NoError(t, err)

		assert.Equal(t, "CUST-0001", first.Code)
		assert.Equal(t, "CUST-0002", second.Code)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		svc := newTestService(newFakeCustomerRepo(), newFakeVendorRepo(), &fakeSaleHistory{}, &fakeBillHistory{})

		_, err := svc.RegisterCustomer(ctx, "Asha Patel", "9876500001")
		require.NoError(t, err)

		_, err = svc.RegisterCustomer(ctx, "Someone Else", "9876500001")
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("allows empty phone repeatedly", func(t *testing.T) {
		svc := newTestService(newFakeCustomerRepo(), newFakeVendorRepo(), &fakeSaleHistory{}, &fakeBillHistory{})

		_, err := svc.RegisterCustomer(ctx, "Walk In One", "")
		require.NoError(t, err)
		_, err = svc.RegisterCustomer(ctx, "Walk In Two", "")
		require.NoError(t, err)
	})
}

func TestRegisterVendor(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeCustomerRepo(), newFakeVendorRepo(), &fakeSaleHistory{}, &fakeBillHistory{})

	v, err := svc.RegisterVendor(ctx, "MedSupply Co", "022-12345")
	require.NoError(t, err)
	assert.Equal(t, "MedSupply Co", v.Name)

	_, err = svc.RegisterVendor(ctx, "MedSupply Co", "022-99999")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestReconcileCustomer(t *testing.T) {
	ctx := context.Background()
	customers := newFakeCustomerRepo()
	sales := &fakeSaleHistory{}
	bills := &fakeBillHistory{}
	svc := newTestService(customers, newFakeVendorRepo(), sales, bills)

	customer, err := svc.RegisterCustomer(ctx, "Asha Patel", "9876500001")
	require.NoError(t, err)

	// Seed history: two sales for this customer, one for another, one bill.
	sale1 := trade.NewSale(&customer.ID, customer.Name, "cash", time.Now())
	sale1.GrandTotal = decimal.NewFromInt(150)
	sale2 := trade.NewSale(&customer.ID, customer.Name, "upi", time.Now())
	sale2.GrandTotal = decimal.NewFromInt(80)
	other := uuid.New()
	sale3 := trade.NewSale(&other, "Other", "cash", time.Now())
	sale3.GrandTotal = decimal.NewFromInt(999)
	sales.sales = []*trade.Sale{sale1, sale2, sale3}

	bill, err := trade.NewBill("PB-20260829-001", &customer.ID, customer.Name, customer.Phone, "cash", time.Now())
	require.NoError(t, err)
	bill.GrandTotal = decimal.NewFromInt(70)
	bills.bills = []*trade.Bill{bill}

	got, err := svc.ReconcileCustomer(ctx, customer.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalOrders)
	assert.True(t, decimal.NewFromInt(300).Equal(got.TotalSpent), got.TotalSpent.String())
}

func TestReconcileCustomerNotFound(t *testing.T) {
	svc := newTestService(newFakeCustomerRepo(), newFakeVendorRepo(), &fakeSaleHistory{}, &fakeBillHistory{})

	_, err := svc.ReconcileCustomer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
