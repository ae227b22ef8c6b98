package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/analytics/domain"
	"github.com/Apurer/erpflow/internal/domains/analytics/ports"
)

var _ ports.Store = (*Store)(nil)

// Store runs the dashboard aggregates against the shared schema. It never writes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type leadGroupRow struct {
	Status string   `gorm:"column:status"`
	Count  int64    `gorm:"column:count"`
	Value  *float64 `gorm:"column:value"`
}

type recentInvoiceRow struct {
	ID           string    `gorm:"column:id"`
	Number       string    `gorm:"column:number"`
	CustomerName *string   `gorm:"column:customer_name"`
	Total        float64   `gorm:"column:total"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

type recentCustomerRow struct {
	ID        string    `gorm:"column:id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (s *Store) SumPaidInvoiceTotal(ctx context.Context, from, to *time.Time) (float64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	q := s.db.WithContext(ctx).Table("invoices").Where("status = ?", "PAID")
	if from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("created_at < ?", to.UTC())
	}
	var total float64
	if err := q.Select("COALESCE(SUM(total), 0)").Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CountInvoices(ctx context.Context, statuses ...string) (int64, error) {
	return s.count(ctx, "invoices", statusScope(statuses))
}

func (s *Store) CountCustomers(ctx context.Context, since *time.Time) (int64, error) {
	return s.count(ctx, "customers", func(tx *gorm.DB) *gorm.DB {
		if since != nil {
			return tx.Where("created_at >= ?", since.UTC())
		}
		return tx
	})
}

func (s *Store) CountLeads(ctx context.Context, statuses ...string) (int64, error) {
	return s.count(ctx, "leads", statusScope(statuses))
}

// LeadPipeline groups leads by status with count and value sum.
func (s *Store) LeadPipeline(ctx context.Context) ([]domain.LeadGroup, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []leadGroupRow
	if err := s.db.WithContext(ctx).
		Table("leads").
		Select("status, COUNT(*) AS count, SUM(value) AS value").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.LeadGroup, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.LeadGroup{Status: row.Status, Count: row.Count, Value: row.Value})
	}
	return out, nil
}

func (s *Store) CountProducts(ctx context.Context, maxStock *int) (int64, error) {
	return s.count(ctx, "products", func(tx *gorm.DB) *gorm.DB {
		if maxStock != nil {
			return tx.Where("stock <= ?", *maxStock)
		}
		return tx
	})
}

// RecentInvoices returns the newest invoices with their customer's name.
func (s *Store) RecentInvoices(ctx context.Context, limit int) ([]domain.RecentInvoice, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []recentInvoiceRow
	if err := s.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.id, invoices.number, customers.name AS customer_name, invoices.total, invoices.status, invoices.created_at").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RecentInvoice, 0, len(rows))
	for _, row := range rows {
		inv := domain.RecentInvoice{
			ID:        row.ID,
			Number:    row.Number,
			Total:     row.Total,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		}
		if row.CustomerName != nil {
			inv.CustomerName = *row.CustomerName
		}
		out = append(out, inv)
	}
	return out, nil
}

func (s *Store) RecentCustomers(ctx context.Context, limit int) ([]domain.RecentCustomer, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []recentCustomerRow
	if err := s.db.WithContext(ctx).
		Table("customers").
		Select("id, name, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RecentCustomer, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.RecentCustomer{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (s *Store) count(ctx context.Context, table string, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Table(table).Scopes(scope).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func statusScope(statuses []string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		switch len(statuses) {
		case 0:
			return tx
		case 1:
			return tx.Where("status = ?", statuses[0])
		default:
			return tx.Where("status IN ?", statuses)
		}
	}
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("analytics store not configured")
	}
	return nil
}
