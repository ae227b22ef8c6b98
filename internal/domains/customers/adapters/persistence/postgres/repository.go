package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/customers/domain"
	"github.com/Apurer/erpflow/internal/domains/customers/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers using GORM. Caller manages DB lifecycle and schema.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex;size:320"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Company   string    `gorm:"column:company"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

type countRow struct {
	CustomerID string `gorm:"column:customer_id"`
	Count      int64  `gorm:"column:count"`
}

type revenueRow struct {
	CustomerID string  `gorm:"column:customer_id"`
	Total      float64 `gorm:"column:total"`
}

type invoiceDigestRow struct {
	ID         string  `gorm:"column:id"`
	CustomerID string  `gorm:"column:customer_id"`
	Total      float64 `gorm:"column:total"`
	Status     string  `gorm:"column:status"`
}

// Create inserts a customer; a taken email surfaces as ports.ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(customer)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a single customer.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns one page of customers, newest first, with invoice and lead activity folded in.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Summary, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&customerRecord{}).Scopes(searchScope(filter.Search)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []customerRecord
	if err := db.Scopes(searchScope(filter.Search)).
		Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return []*domain.Summary{}, total, nil
	}

	ids := make([]string, 0, len(records))
	summaries := make([]*domain.Summary, 0, len(records))
	byID := make(map[string]*domain.Summary, len(records))
	for i := range records {
		summary := &domain.Summary{Customer: *records[i].toDomain(), RecentInvoices: []domain.InvoiceDigest{}}
		ids = append(ids, records[i].ID)
		summaries = append(summaries, summary)
		byID[records[i].ID] = summary
	}

	var invoiceCounts []countRow
	if err := db.Table("invoices").
		Select("customer_id, COUNT(*) AS count").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&invoiceCounts).Error; err != nil {
		return nil, 0, err
	}
	for _, row := range invoiceCounts {
		byID[row.CustomerID].InvoiceCount = row.Count
	}

	var leadCounts []countRow
	if err := db.Table("leads").
		Select("customer_id, COUNT(*) AS count").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Scan(&leadCounts).Error; err != nil {
		return nil, 0, err
	}
	for _, row := range leadCounts {
		byID[row.CustomerID].LeadCount = row.Count
	}

	var revenue []revenueRow
	if err := db.Table("invoices").
		Select("customer_id, COALESCE(SUM(total), 0) AS total").
		Where("customer_id IN ? AND status = ?", ids, "PAID").
		Group("customer_id").
		Scan(&revenue).Error; err != nil {
		return nil, 0, err
	}
	for _, row := range revenue {
		byID[row.CustomerID].TotalRevenue = row.Total
	}

	var recent []invoiceDigestRow
	if err := db.Raw(`SELECT id, customer_id, total, status FROM (
		SELECT id, customer_id, total, status,
			ROW_NUMBER() OVER (PARTITION BY customer_id ORDER BY created_at DESC) AS rn
		FROM invoices WHERE customer_id IN ?
	) ranked WHERE rn <= ? ORDER BY customer_id, rn`, ids, ports.RecentInvoiceLimit).
		Scan(&recent).Error; err != nil {
		return nil, 0, err
	}
	for _, row := range recent {
		summary := byID[row.CustomerID]
		summary.RecentInvoices = append(summary.RecentInvoices, domain.InvoiceDigest{
			ID:     row.ID,
			Total:  row.Total,
			Status: row.Status,
		})
	}
	return summaries, total, nil
}

func searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		like, ok := projection.ContainsPattern(search)
		if !ok {
			return tx
		}
		return tx.Where(projection.ContainsAny("name", "email", "company"), like, like, like)
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(c *domain.Customer) customerRecord {
	return customerRecord{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Company:   r.Company,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
