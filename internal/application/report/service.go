// Package report implements the read-only rollups over sale, bill and batch
// history. Summaries are cacheable; everything here is a consumer of the
// ledger's committed records and never writes.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaledger/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cache is the optional summary cache. Implementations are free to drop
// entries at any time; a miss just recomputes.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// SalesSummary is the aggregate view over a date range
type SalesSummary struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Orders        int             `json:"orders"`
	Sales         decimal.Decimal `json:"sales"`
	Discount      decimal.Decimal `json:"discount"`
	GST           decimal.Decimal `json:"gst"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// DailySales is one day's slice of the summary
type DailySales struct {
	Day    string          `json:"day"`
	Orders int             `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}

const summaryTTL = 5 * time.Minute

// Service computes the reporting rollups
type Service struct {
	sales  trade.SaleRepository
	bills  trade.BillRepository
	cache  Cache
	logger *zap.Logger
}

// NewService creates a report Service. cache may be nil.
func NewService(sales trade.SaleRepository, bills trade.BillRepository, cache Cache, logger *zap.Logger) *Service {
	return &Service{sales: sales, bills: bills, cache: cache, logger: logger}
}

// SalesSummary aggregates sales and bills between from and to. Profit is
// revenue minus the batch cost captured at allocation time; bills carry no
// allocation cost and contribute revenue only.
func (s *Service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	key := fmt.Sprintf("report:summary:%s:%s", from.Format("20060102"), to.Format("20060102"))
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var cached SalesSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	summary := &SalesSummary{
		From:          from,
		To:            to,
		Sales:         decimal.Zero,
		Discount:      decimal.Zero,
		GST:           decimal.Zero,
		Cost:          decimal.Zero,
		Profit:        decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}

	sales, err := s.sales.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		summary.Orders++
		summary.Sales = summary.Sales.Add(sale.GrandTotal)
		summary.Discount = summary.Discount.Add(sale.TotalDiscount)
		summary.GST = summary.GST.Add(sale.TotalGST)
		summary.Cost = summary.Cost.Add(sale.TotalCost)
	}

	bills, err := s.bills.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		summary.Orders++
		summary.Sales = summary.Sales.Add(bill.GrandTotal)
		summary.Discount = summary.Discount.Add(bill.TotalDiscount)
		summary.GST = summary.GST.Add(bill.TotalGST)
	}

	summary.Profit = summary.Sales.Sub(summary.Cost)
	if summary.Orders > 0 {
		summary.AvgOrderValue = summary.Sales.DivRound(decimal.NewFromInt(int64(summary.Orders)), 2)
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			s.cache.Set(ctx, key, data, summaryTTL)
		}
	}
	return summary, nil
}

// DailyBreakdown splits the range into per-day aggregates, skipping days
// with no activity.
func (s *Service) DailyBreakdown(ctx context.Context, from, to time.Time) ([]DailySales, error) {
	days := make(map[string]*DailySales)

	bump := func(date time.Time, total, cost decimal.Decimal) {
		key := date.Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = &DailySales{Day: key, Sales: decimal.Zero, Profit: decimal.Zero}
			days[key] = day
		}
		day.Orders++
		day.Sales = day.Sales.Add(total)
		day.Profit = day.Profit.Add(total.Sub(cost))
	}

	sales, err := s.sales.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		bump(sale.SaleDate, sale.GrandTotal, sale.TotalCost)
	}
	bills, err := s.bills.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		bump(bill.BillDate, bill.GrandTotal, decimal.Zero)
	}

	out := make([]DailySales, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// ProductSales is one medicine's share of the range
type ProductSales struct {
	MedicineName string          `json:"medicine_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProducts ranks medicines by revenue over the range. Bill lines count
// by product name since free-form lines carry no medicine reference.
func (s *Service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	byName := make(map[string]*ProductSales)
	bump := func(name string, qty, revenue decimal.Decimal) {
		if name == "" {
			return
		}
		p, ok := byName[name]
		if !ok {
			p = &ProductSales{MedicineName: name, Quantity: decimal.Zero, Revenue: decimal.Zero}
			byName[name] = p
		}
		p.Quantity = p.Quantity.Add(qty)
		p.Revenue = p.Revenue.Add(revenue)
	}

	sales, err := s.sales.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		for _, item := range sale.Items {
			bump(item.MedicineName, item.Quantity, item.LineTotal)
		}
	}
	bills, err := s.bills.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		for _, item := range bill.Items {
			bump(item.ProductName, item.Quantity, item.LineTotal)
		}
	}

	out := make([]ProductSales, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CustomerSales is one customer's share of the range
type CustomerSales struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Orders       int             `json:"orders"`
	Spent        decimal.Decimal `json:"spent"`
}

// TopCustomers ranks identified customers by spend over the range.
// Walk-in sales without a customer reference are excluded.
func (s *Service) TopCustomers(ctx context.Context, from, to time.Time, limit int) ([]CustomerSales, error) {
	if limit <= 0 {
		limit = 10
	}
	byID := make(map[uuid.UUID]*CustomerSales)
	bump := func(id *uuid.UUID, name string, total decimal.Decimal) {
		if id == nil {
			return
		}
		c, ok := byID[*id]
		if !ok {
			c = &CustomerSales{CustomerID: *id, CustomerName: name, Spent: decimal.Zero}
			byID[*id] = c
		}
		c.Orders++
		c.Spent = c.Spent.Add(total)
	}

	sales, err := s.sales.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		bump(sale.CustomerID, sale.CustomerName, sale.GrandTotal)
	}
	bills, err := s.bills.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, bill := range bills {
		bump(bill.CustomerID, bill.CustomerName, bill.GrandTotal)
	}

	out := make([]CustomerSales, 0, len(byID))
	for _, c := range byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Spent.GreaterThan(out[j].Spent) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
