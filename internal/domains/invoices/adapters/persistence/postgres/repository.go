package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/domains/invoices/ports"
)

var _ ports.Repository = (*Repository)(nil)

// numberAttempts bounds retries when two inserts race for the same invoice number.
const numberAttempts = 3

// Repository persists invoices and their items using GORM. Caller manages DB lifecycle and schema.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type invoiceRecord struct {
	ID         string     `gorm:"primaryKey;column:id;size:36"`
	Number     string     `gorm:"column:number;uniqueIndex"`
	CustomerID string     `gorm:"column:customer_id;size:36;index"`
	Subtotal   float64    `gorm:"column:subtotal"`
	Tax        float64    `gorm:"column:tax"`
	Total      float64    `gorm:"column:total"`
	Status     string     `gorm:"column:status;type:varchar(32)"`
	DueDate    *time.Time `gorm:"column:due_date"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

type itemRecord struct {
	ID        string  `gorm:"primaryKey;column:id;size:36"`
	InvoiceID string  `gorm:"column:invoice_id;size:36;index"`
	ProductID string  `gorm:"column:product_id;size:36;index"`
	Quantity  float64 `gorm:"column:quantity"`
	Price     float64 `gorm:"column:price"`
	Total     float64 `gorm:"column:total"`
}

func (itemRecord) TableName() string { return "invoice_items" }

// invoiceRow is an invoice joined with its customer. The embedded field must be
// exported for gorm to scan its columns.
type invoiceRow struct {
	Invoice         invoiceRecord `gorm:"embedded"`
	CustomerName    string        `gorm:"column:customer_name"`
	CustomerEmail   string        `gorm:"column:customer_email"`
	CustomerCompany string        `gorm:"column:customer_company"`
}

type itemRow struct {
	Item        itemRecord `gorm:"embedded"`
	ProductName *string    `gorm:"column:product_name"`
	ProductSKU  *string    `gorm:"column:product_sku"`
}

// Create inserts the invoice and its items in one transaction, numbering it from the current count.
func (r *Repository) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, errors.New("invoice is nil")
	}
	if err := invoice.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(invoice)
	items := toItemRecords(invoice)
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&invoiceRecord{}).Count(&count).Error; err != nil {
				return err
			}
			record.Number = domain.FormatNumber(count + 1)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			if len(items) > 0 {
				return tx.Create(&items).Error
			}
			return nil
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	saved := *invoice
	saved.Number = record.Number
	saved.Items = append([]domain.Item(nil), invoice.Items...)
	return &saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row invoiceRow
	err := r.db.WithContext(ctx).Scopes(withCustomer).Where("invoices.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	invoices := []*domain.Invoice{row.toDomain()}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices[0], nil
}

// List returns one page of invoices, newest first, with customer and item details.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Invoice, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&invoiceRecord{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []invoiceRow
	if err := db.Scopes(withCustomer, filterScope(filter)).
		Order("invoices.created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	invoices := make([]*domain.Invoice, 0, len(rows))
	for i := range rows {
		invoices = append(invoices, rows[i].toDomain())
	}
	if err := r.attachItems(ctx, invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// CustomerExists reports whether the referenced customer row is present.
func (r *Repository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Table("customers").Where("id = ?", customerID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) attachItems(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, 0, len(invoices))
	byID := make(map[string]*domain.Invoice, len(invoices))
	for _, inv := range invoices {
		inv.Items = []domain.Item{}
		ids = append(ids, inv.ID)
		byID[inv.ID] = inv
	}
	var rows []itemRow
	if err := r.db.WithContext(ctx).
		Table("invoice_items").
		Select("invoice_items.*, products.name AS product_name, products.sku AS product_sku").
		Joins("LEFT JOIN products ON products.id = invoice_items.product_id").
		Where("invoice_items.invoice_id IN ?", ids).
		Order("invoice_items.id").
		Find(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		inv, ok := byID[row.Item.InvoiceID]
		if !ok {
			continue
		}
		inv.Items = append(inv.Items, domain.Item{
			ID:          row.Item.ID,
			ProductID:   row.Item.ProductID,
			Quantity:    row.Item.Quantity,
			Price:       row.Item.Price,
			Total:       row.Item.Total,
			ProductName: deref(row.ProductName),
			ProductSKU:  deref(row.ProductSKU),
		})
	}
	return nil
}

func withCustomer(tx *gorm.DB) *gorm.DB {
	return tx.Table("invoices").
		Select("invoices.*, customers.name AS customer_name, customers.email AS customer_email, customers.company AS customer_company").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id")
}

func filterScope(filter ports.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			tx = tx.Where("invoices.status = ?", string(filter.Status))
		}
		if filter.CustomerID != "" {
			tx = tx.Where("invoices.customer_id = ?", filter.CustomerID)
		}
		return tx
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres invoice repository not configured")
	}
	return nil
}

func toRecord(inv *domain.Invoice) invoiceRecord {
	return invoiceRecord{
		ID:         inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Total:      inv.Total,
		Status:     string(inv.Status),
		DueDate:    inv.DueDate,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}

func toItemRecords(inv *domain.Invoice) []itemRecord {
	records := make([]itemRecord, 0, len(inv.Items))
	for _, item := range inv.Items {
		records = append(records, itemRecord{
			ID:        item.ID,
			InvoiceID: inv.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}
	return records
}

func (r invoiceRow) toDomain() *domain.Invoice {
	rec := r.Invoice
	inv := &domain.Invoice{
		ID:         rec.ID,
		Number:     rec.Number,
		CustomerID: rec.CustomerID,
		Subtotal:   rec.Subtotal,
		Tax:        rec.Tax,
		Total:      rec.Total,
		Status:     domain.Status(rec.Status),
		DueDate:    rec.DueDate,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	inv.Customer = &domain.CustomerRef{
		Name:    r.CustomerName,
		Email:   r.CustomerEmail,
		Company: r.CustomerCompany,
	}
	return inv
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
