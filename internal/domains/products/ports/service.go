package ports

import (
	"context"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// CreateInput carries the fields accepted when adding a product.
type CreateInput struct {
	Name        string
	SKU         string
	Description string
	CategoryID  string
	Price       float64
	Stock       int
}

// CreateCategoryInput carries the fields accepted when adding a category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// Service exposes product and category use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) (projection.Page[*domain.Product], error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
