package ports

import (
	"context"
	"errors"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateSKU      = errors.New("product with this SKU already exists")
	ErrDuplicateCategory = errors.New("category with this name already exists")
)

// ListFilter narrows the product listing.
type ListFilter struct {
	// Search matches name, sku or description case-insensitively.
	Search     string
	CategoryID string
	// LowStock restricts the listing to products at or below domain.LowStockThreshold.
	LowStock bool
	Page     projection.PageRequest
}

type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
