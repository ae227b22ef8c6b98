package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/products/domain"
	"github.com/Apurer/erpflow/internal/domains/products/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// Service exposes product bounded context use cases.
type Service struct {
	products   ports.Repository
	categories ports.CategoryRepository
	now        func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(products ports.Repository, categories ports.CategoryRepository, opts ...Option) *Service {
	s := &Service{products: products, categories: categories, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create adds a product after checking that its category exists.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*domain.Product, error) {
	product, err := domain.NewProduct(uuid.NewString(), input.Name, input.SKU, input.CategoryID, input.Price, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	product.Description = strings.TrimSpace(input.Description)
	category, err := s.categories.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	saved, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	saved.CategoryName = category.Name
	return saved, nil
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) (projection.Page[*domain.Product], error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CategoryID = strings.TrimSpace(filter.CategoryID)
	filter.Page = projection.NewPageRequest(filter.Page.Page, filter.Page.Limit)
	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return projection.Page[*domain.Product]{}, err
	}
	return projection.NewPage(items, filter.Page, total), nil
}

func (s *Service) CreateCategory(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(uuid.NewString(), input.Name, input.Description)
	if err != nil {
		return nil, mapError(err)
	}
	now := s.now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	return s.categories.Create(ctx, category)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

var _ ports.Service = (*Service)(nil)
