package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/domains/products/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var (
	_ ports.Repository         = (*Repository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Name        string    `gorm:"column:name"`
	SKU         string    `gorm:"column:sku;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CategoryID  string    `gorm:"column:category_id;size:36;index"`
	Price       float64   `gorm:"column:price"`
	Stock       int       `gorm:"column:stock;index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// productRow is a product joined with its category name. The embedded field must be
// exported for gorm to scan its columns.
type productRow struct {
	Product      productRecord `gorm:"embedded"`
	CategoryName string        `gorm:"column:category_name"`
}

type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Repository persists products using GORM. Caller manages DB lifecycle and schema.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a product; a taken SKU surfaces as ports.ErrDuplicateSKU.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSKU
		}
		return nil, err
	}
	return record.toDomain(""), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row productRow
	err := r.db.WithContext(ctx).
		Scopes(withCategoryName).
		Where("products.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return row.Product.toDomain(row.CategoryName), nil
}

// List returns one page of products, newest first, with their category names.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&productRecord{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []productRow
	if err := db.Scopes(withCategoryName, filterScope(filter)).
		Order("products.created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].Product.toDomain(rows[i].CategoryName))
	}
	return products, total, nil
}

func withCategoryName(tx *gorm.DB) *gorm.DB {
	return tx.Table("products").
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
}

func filterScope(filter ports.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if like, ok := projection.ContainsPattern(filter.Search); ok {
			tx = tx.Where(projection.ContainsAny("products.name", "products.sku", "products.description"), like, like, like)
		}
		if filter.CategoryID != "" {
			tx = tx.Where("products.category_id = ?", filter.CategoryID)
		}
		if filter.LowStock {
			tx = tx.Where("products.stock <= ?", domain.LowStockThreshold)
		}
		return tx
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r productRecord) toDomain(categoryName string) *domain.Product {
	return &domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		SKU:          r.SKU,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		Price:        r.Price,
		Stock:        r.Stock,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CategoryName: categoryName,
	}
}

// CategoryRepository persists product categories using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	record := categoryRecord{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateCategory
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres category repository not configured")
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
