package ports

import (
	"context"
	"time"

	"github.com/Apurer/erpflow/internal/domains/analytics/domain"
)

// Store exposes the aggregate reads behind the dashboard. Every method is
// independent of the others and safe to call concurrently.
type Store interface {
	// SumPaidInvoiceTotal sums PAID invoice totals created in [from, to). Nil bounds are open.
	SumPaidInvoiceTotal(ctx context.Context, from, to *time.Time) (float64, error)
	// CountInvoices counts invoices in any of statuses, or all invoices when none are given.
	CountInvoices(ctx context.Context, statuses ...string) (int64, error)
	// CountCustomers counts customers created at or after since, or all when since is nil.
	CountCustomers(ctx context.Context, since *time.Time) (int64, error)
	// CountLeads counts leads in any of statuses, or all leads when none are given.
	CountLeads(ctx context.Context, statuses ...string) (int64, error)
	LeadPipeline(ctx context.Context) ([]domain.LeadGroup, error)
	// CountProducts counts products with stock at or below maxStock, or all when maxStock is nil.
	CountProducts(ctx context.Context, maxStock *int) (int64, error)
	RecentInvoices(ctx context.Context, limit int) ([]domain.RecentInvoice, error)
	RecentCustomers(ctx context.Context, limit int) ([]domain.RecentCustomer, error)
}

// Service computes dashboard snapshots.
type Service interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
}
