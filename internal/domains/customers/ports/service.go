package ports

import (
	"context"

	"github.com/Apurer/erpflow/internal/domains/customers/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// CreateInput carries the fields accepted when registering a customer.
type CreateInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Company string
}

// Service exposes customer use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter ListFilter) (projection.Page[*domain.Summary], error)
}
