package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/erpflow/internal/domains/analytics/domain"
	"github.com/Apurer/erpflow/internal/domains/analytics/ports"
	invoicedomain "github.com/Apurer/erpflow/internal/domains/invoices/domain"
	leaddomain "github.com/Apurer/erpflow/internal/domains/leads/domain"
	productdomain "github.com/Apurer/erpflow/internal/domains/products/domain"
)

// Service aggregates the dashboard from independent store reads.
type Service struct {
	store ports.Store
	now   func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock used to derive month boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store ports.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dashboard fans out every read, waits for all of them and derives the snapshot.
// The first failed read cancels the rest and fails the whole snapshot.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	startOfMonth, startOfLastMonth := domain.MonthBoundaries(s.now())
	startOfMonth, startOfLastMonth = startOfMonth.UTC(), startOfLastMonth.UTC()

	paid := string(invoicedomain.StatusPaid)
	pending := make([]string, 0, len(invoicedomain.PendingStatuses))
	for _, st := range invoicedomain.PendingStatuses {
		pending = append(pending, string(st))
	}
	open := make([]string, 0, len(leaddomain.OpenStatuses))
	for _, st := range leaddomain.OpenStatuses {
		open = append(open, string(st))
	}
	lowStock := productdomain.LowStockThreshold

	var (
		revenueCurrent, revenuePrevious, revenueTotal float64
		invoicesTotal, invoicesPaid, invoicesPending  int64
		customersTotal, customersNew                  int64
		leadsTotal, leadsOpen, leadsWon               int64
		groups                                        []domain.LeadGroup
		productsTotal, productsLowStock               int64
		recentInvoices                                []domain.RecentInvoice
		recentCustomers                               []domain.RecentCustomer
	)

	g, ctx := errgroup.WithContext(ctx)
	read := func(name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	read("current month revenue", func() (err error) {
		revenueCurrent, err = s.store.SumPaidInvoiceTotal(ctx, &startOfMonth, nil)
		return err
	})
	read("previous month revenue", func() (err error) {
		revenuePrevious, err = s.store.SumPaidInvoiceTotal(ctx, &startOfLastMonth, &startOfMonth)
		return err
	})
	read("total revenue", func() (err error) {
		revenueTotal, err = s.store.SumPaidInvoiceTotal(ctx, nil, nil)
		return err
	})
	read("invoice count", func() (err error) {
		invoicesTotal, err = s.store.CountInvoices(ctx)
		return err
	})
	read("paid invoice count", func() (err error) {
		invoicesPaid, err = s.store.CountInvoices(ctx, paid)
		return err
	})
	read("pending invoice count", func() (err error) {
		invoicesPending, err = s.store.CountInvoices(ctx, pending...)
		return err
	})
	read("customer count", func() (err error) {
		customersTotal, err = s.store.CountCustomers(ctx, nil)
		return err
	})
	read("new customer count", func() (err error) {
		customersNew, err = s.store.CountCustomers(ctx, &startOfMonth)
		return err
	})
	read("lead count", func() (err error) {
		leadsTotal, err = s.store.CountLeads(ctx)
		return err
	})
	read("open lead count", func() (err error) {
		leadsOpen, err = s.store.CountLeads(ctx, open...)
		return err
	})
	read("won lead count", func() (err error) {
		leadsWon, err = s.store.CountLeads(ctx, string(leaddomain.StatusClosedWon))
		return err
	})
	read("lead pipeline", func() (err error) {
		groups, err = s.store.LeadPipeline(ctx)
		return err
	})
	read("product count", func() (err error) {
		productsTotal, err = s.store.CountProducts(ctx, nil)
		return err
	})
	read("low stock count", func() (err error) {
		productsLowStock, err = s.store.CountProducts(ctx, &lowStock)
		return err
	})
	read("recent invoices", func() (err error) {
		recentInvoices, err = s.store.RecentInvoices(ctx, domain.RecentActivityLimit)
		return err
	})
	read("recent customers", func() (err error) {
		recentCustomers, err = s.store.RecentCustomers(ctx, domain.RecentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}

	if groups == nil {
		groups = []domain.LeadGroup{}
	}
	invoiceActivities := make([]domain.Activity, 0, len(recentInvoices))
	for _, inv := range limit(recentInvoices, domain.RecentActivityLimit) {
		invoiceActivities = append(invoiceActivities, domain.InvoiceActivity(inv))
	}
	customerActivities := make([]domain.Activity, 0, len(recentCustomers))
	for _, c := range limit(recentCustomers, domain.RecentActivityLimit) {
		customerActivities = append(customerActivities, domain.CustomerActivity(c))
	}

	return domain.Dashboard{
		KPIs: domain.KPIs{
			Revenue: domain.Revenue{
				Current:  revenueCurrent,
				Previous: revenuePrevious,
				Change:   domain.PercentChange(revenueCurrent, revenuePrevious),
				Total:    revenueTotal,
			},
			Customers: domain.CustomerKPI{
				Total:  customersTotal,
				Active: customersTotal,
				New:    customersNew,
			},
			Invoices: domain.InvoiceKPI{
				Total:       invoicesTotal,
				Paid:        invoicesPaid,
				Pending:     invoicesPending,
				PaymentRate: domain.Percentage(invoicesPaid, invoicesTotal),
			},
			Leads: domain.LeadKPI{
				Total:          leadsTotal,
				Open:           leadsOpen,
				Won:            leadsWon,
				ConversionRate: domain.Percentage(leadsWon, leadsTotal),
				Pipeline:       domain.Pipeline(groups),
			},
			Inventory: domain.InventoryKPI{
				TotalProducts: productsTotal,
				LowStock:      productsLowStock,
			},
		},
		Activities: domain.Activities{
			Invoices:  invoiceActivities,
			Customers: customerActivities,
		},
		Charts: domain.Charts{
			MonthlyRevenue: []domain.MonthlyRevenuePoint{},
			LeadConversion: groups,
		},
	}, nil
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

var _ ports.Service = (*Service)(nil)
