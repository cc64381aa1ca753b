package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/inventory"
	"github.com/pharmaledger/backend/internal/domain/notification"
	"github.com/pharmaledger/backend/internal/domain/partner"
	"github.com/pharmaledger/backend/internal/domain/shared"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// memoryStore holds all fake repository state so the fake scope can
// snapshot and restore it, mimicking a database rollback.
type memoryStore struct {
	batches   map[uuid.UUID]inventory.Batch
	sales     map[uuid.UUID]*trade.Sale
	bills     map[uuid.UUID]*trade.Bill
	purchases map[uuid.UUID]*trade.Purchase
	invoices  map[uuid.UUID]*trade.Invoice
	customers map[uuid.UUID]partner.Customer
	vendors   map[uuid.UUID]partner.Vendor
	notes     map[uuid.UUID]*notification.Notification

	invoiceSeq int64
	billSeqs   map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		batches:   make(map[uuid.UUID]inventory.Batch),
		sales:     make(map[uuid.UUID]*trade.Sale),
		bills:     make(map[uuid.UUID]*trade.Bill),
		purchases: make(map[uuid.UUID]*trade.Purchase),
		invoices:  make(map[uuid.UUID]*trade.Invoice),
		customers: make(map[uuid.UUID]partner.Customer),
		vendors:   make(map[uuid.UUID]partner.Vendor),
		notes:     make(map[uuid.UUID]*notification.Notification),
		billSeqs:  make(map[string]int64),
	}
}

func (m *memoryStore) snapshot() *memoryStore {
	s := newMemoryStore()
	for k, v := range m.batches {
		s.batches[k] = v
	}
	for k, v := range m.sales {
		s.sales[k] = v
	}
	for k, v := range m.bills {
		s.bills[k] = v
	}
	for k, v := range m.purchases {
		s.purchases[k] = v
	}
	for k, v := range m.invoices {
		s.invoices[k] = v
	}
	for k, v := range m.customers {
		s.customers[k] = v
	}
	for k, v := range m.vendors {
		s.vendors[k] = v
	}
	for k, v := range m.notes {
		s.notes[k] = v
	}
	s.invoiceSeq = m.invoiceSeq
	for k, v := range m.billSeqs {
		s.billSeqs[k] = v
	}
	return s
}

func (m *memoryStore) restore(s *memoryStore) {
	m.batches = s.batches
	m.sales = s.sales
	m.bills = s.bills
	m.purchases = s.purchases
	m.invoices = s.invoices
	m.customers = s.customers
	m.vendors = s.vendors
	m.notes = s.notes
	m.invoiceSeq = s.invoiceSeq
	m.billSeqs = s.billSeqs
}

// memoryScope runs ledger operations against the memory store and restores
// the pre-transaction snapshot when the function fails, so atomicity
// assertions hold like they would against a real transaction.
type memoryScope struct {
	store *memoryStore
}

func newMemoryScope(store *memoryStore) *memoryScope {
	return &memoryScope{store: store}
}

func (s *memoryScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	snap := s.store.snapshot()
	if err := fn(&memoryRepos{store: s.store}); err != nil {
		s.store.restore(snap)
		return err
	}
	return nil
}

type memoryRepos struct {
	store *memoryStore
}

func (r *memoryRepos) Batches() inventory.BatchRepository     { return &memBatches{r.store} }
func (r *memoryRepos) Sales() trade.SaleRepository            { return &memSales{r.store} }
func (r *memoryRepos) Bills() trade.BillRepository            { return &memBills{r.store} }
func (r *memoryRepos) Purchases() trade.PurchaseRepository    { return &memPurchases{r.store} }
func (r *memoryRepos) Invoices() trade.InvoiceRepository      { return &memInvoices{r.store} }
func (r *memoryRepos) Customers() partner.CustomerRepository  { return &memCustomers{r.store} }
func (r *memoryRepos) Vendors() partner.VendorRepository      { return &memVendors{r.store} }
func (r *memoryRepos) Notifications() notification.Repository { return &memNotes{r.store} }

type memBatches struct{ store *memoryStore }

func (m *memBatches) FindByID(_ context.Context, id uuid.UUID) (*inventory.Batch, error) {
	b, ok := m.store.batches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copy := b
	return &copy, nil
}

func (m *memBatches) FindByMedicine(_ context.Context, medicineID uuid.UUID, _ shared.Filter) ([]inventory.Batch, error) {
	var out []inventory.Batch
	for _, b := range m.store.batches {
		if b.MedicineID == medicineID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBatches) FindAllocatable(_ context.Context, medicineID uuid.UUID) ([]inventory.Batch, error) {
	var out []inventory.Batch
	for _, b := range m.store.batches {
		if b.MedicineID == medicineID && b.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		}
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *memBatches) DeductGuarded(_ context.Context, batchID uuid.UUID, qty decimal.Decimal) error {
	b, ok := m.store.batches[batchID]
	if !ok {
		return shared.ErrNotFound
	}
	if b.Quantity.LessThan(qty) {
		return shared.ErrStockConflict
	}
	b.Quantity = b.Quantity.Sub(qty)
	m.store.batches[batchID] = b
	return nil
}

func (m *memBatches) Save(_ context.Context, batch *inventory.Batch) error {
	m.store.batches[batch.ID] = *batch
	return nil
}

func (m *memBatches) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store.batches, id)
	return nil
}

func (m *memBatches) FindExpiringWithin(_ context.Context, cutoff time.Time) ([]inventory.Batch, error) {
	var out []inventory.Batch
	for _, b := range m.store.batches {
		if b.Quantity.GreaterThan(decimal.Zero) && !b.ExpiryDate.After(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBatches) FindLatestByMedicine(_ context.Context, medicineID uuid.UUID) (*inventory.Batch, error) {
	var latest *inventory.Batch
	for _, b := range m.store.batches {
		b := b
		if b.MedicineID != medicineID {
			continue
		}
		if latest == nil || b.PurchaseDate.After(latest.PurchaseDate) {
			latest = &b
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (m *memBatches) SummarizeStock(_ context.Context) ([]inventory.StockSummary, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, b := range m.store.batches {
		totals[b.MedicineID] = totals[b.MedicineID].Add(b.Quantity)
	}
	out := make([]inventory.StockSummary, 0, len(totals))
	for id, qty := range totals {
		out = append(out, inventory.StockSummary{MedicineID: id, TotalQuantity: qty})
	}
	return out, nil
}

func (m *memBatches) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(m.store.batches)), nil
}

type memSales struct{ store *memoryStore }

func (m *memSales) FindByID(_ context.Context, id uuid.UUID) (*trade.Sale, error) {
	s, ok := m.store.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s, nil
}

func (m *memSales) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[trade.Sale], error) {
	return nil, nil
}

func (m *memSales) FindByDateRange(_ context.Context, from, to time.Time) ([]*trade.Sale, error) {
	var out []*trade.Sale
	for _, s := range m.store.sales {
		if !s.SaleDate.Before(from) && !s.SaleDate.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSales) FindByCustomer(_ context.Context, _ uuid.UUID, _ shared.Filter) (*shared.Paginated[trade.Sale], error) {
	return nil, nil
}

func (m *memSales) Save(_ context.Context, sale *trade.Sale) error {
	m.store.sales[sale.ID] = sale
	return nil
}

func (m *memSales) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.sales)), nil
}

type memBills struct{ store *memoryStore }

func (m *memBills) FindByID(_ context.Context, id uuid.UUID) (*trade.Bill, error) {
	b, ok := m.store.bills[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return b, nil
}

func (m *memBills) FindByNumber(_ context.Context, billNumber string) (*trade.Bill, error) {
	for _, b := range m.store.bills {
		if b.BillNumber == billNumber {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memBills) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[trade.Bill], error) {
	return nil, nil
}

func (m *memBills) FindByDateRange(_ context.Context, from, to time.Time) ([]*trade.Bill, error) {
	var out []*trade.Bill
	for _, b := range m.store.bills {
		if !b.BillDate.Before(from) && !b.BillDate.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBills) Save(_ context.Context, bill *trade.Bill) error {
	m.store.bills[bill.ID] = bill
	return nil
}

func (m *memBills) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store.bills, id)
	return nil
}

func (m *memBills) NextDailySequence(_ context.Context, day time.Time) (int64, error) {
	key := day.Format("20060102")
	m.store.billSeqs[key]++
	return m.store.billSeqs[key], nil
}

func (m *memBills) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.bills)), nil
}

type memPurchases struct{ store *memoryStore }

func (m *memPurchases) FindByID(_ context.Context, id uuid.UUID) (*trade.Purchase, error) {
	p, ok := m.store.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (m *memPurchases) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	return nil, nil
}

func (m *memPurchases) FindByVendor(_ context.Context, _ uuid.UUID, _ shared.Filter) (*shared.Paginated[trade.Purchase], error) {
	return nil, nil
}

func (m *memPurchases) FindWithDue(_ context.Context) ([]*trade.Purchase, error) {
	var out []*trade.Purchase
	for _, p := range m.store.purchases {
		if p.DueAmount.IsPositive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPurchases) Save(_ context.Context, purchase *trade.Purchase) error {
	m.store.purchases[purchase.ID] = purchase
	return nil
}

func (m *memPurchases) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.purchases)), nil
}

type memInvoices struct{ store *memoryStore }

func (m *memInvoices) FindByID(_ context.Context, id uuid.UUID) (*trade.Invoice, error) {
	i, ok := m.store.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return i, nil
}

func (m *memInvoices) FindBySale(_ context.Context, saleID uuid.UUID) (*trade.Invoice, error) {
	for _, i := range m.store.invoices {
		if i.SaleID == saleID {
			return i, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memInvoices) FindRetryable(_ context.Context, limit int) ([]*trade.Invoice, error) {
	var out []*trade.Invoice
	for _, i := range m.store.invoices {
		if i.CanRetry() && len(out) < limit {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *memInvoices) Save(_ context.Context, invoice *trade.Invoice) error {
	m.store.invoices[invoice.ID] = invoice
	return nil
}

func (m *memInvoices) NextSequence(_ context.Context) (int64, error) {
	m.store.invoiceSeq++
	return m.store.invoiceSeq, nil
}

type memCustomers struct{ store *memoryStore }

func (m *memCustomers) FindByID(_ context.Context, id uuid.UUID) (*partner.Customer, error) {
	c, ok := m.store.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copy := c
	return &copy, nil
}

func (m *memCustomers) FindByCode(_ context.Context, code string) (*partner.Customer, error) {
	for _, c := range m.store.customers {
		if c.Code == code {
			copy := c
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomers) FindByPhone(_ context.Context, phone string) (*partner.Customer, error) {
	for _, c := range m.store.customers {
		if c.Phone == phone {
			copy := c
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memCustomers) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[partner.Customer], error) {
	return nil, nil
}

func (m *memCustomers) Save(_ context.Context, customer *partner.Customer) error {
	m.store.customers[customer.ID] = *customer
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store.customers, id)
	return nil
}

func (m *memCustomers) NextCodeSequence(_ context.Context) (int64, error) {
	return int64(len(m.store.customers) + 1), nil
}

func (m *memCustomers) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.customers)), nil
}

type memVendors struct{ store *memoryStore }

func (m *memVendors) FindByID(_ context.Context, id uuid.UUID) (*partner.Vendor, error) {
	v, ok := m.store.vendors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copy := v
	return &copy, nil
}

func (m *memVendors) FindByName(_ context.Context, name string) (*partner.Vendor, error) {
	for _, v := range m.store.vendors {
		if v.Name == name {
			copy := v
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memVendors) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[partner.Vendor], error) {
	return nil, nil
}

func (m *memVendors) FindWithOutstanding(_ context.Context) ([]*partner.Vendor, error) {
	var out []*partner.Vendor
	for _, v := range m.store.vendors {
		if v.OutstandingBalance.IsPositive() {
			copy := v
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *memVendors) Save(_ context.Context, vendor *partner.Vendor) error {
	m.store.vendors[vendor.ID] = *vendor
	return nil
}

func (m *memVendors) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store.vendors, id)
	return nil
}

func (m *memVendors) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.vendors)), nil
}

type memNotes struct{ store *memoryStore }

func (m *memNotes) FindByID(_ context.Context, id uuid.UUID) (*notification.Notification, error) {
	n, ok := m.store.notes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return n, nil
}

func (m *memNotes) FindPending(_ context.Context, limit int) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range m.store.notes {
		if n.IsDispatchable() && len(out) < limit {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memNotes) FindByStatus(_ context.Context, _ notification.Status, _ shared.Filter) (*shared.Paginated[notification.Notification], error) {
	return nil, nil
}

func (m *memNotes) Save(_ context.Context, n *notification.Notification) error {
	m.store.notes[n.ID] = n
	return nil
}

func (m *memNotes) CountByStatus(_ context.Context, status notification.Status) (int64, error) {
	var count int64
	for _, n := range m.store.notes {
		if n.Status == status {
			count++
		}
	}
	return count, nil
}

var _ Scope = (*memoryScope)(nil)
var _ Repositories = (*memoryRepos)(nil)
