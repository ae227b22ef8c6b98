package ports

import (
	"context"
	"time"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// ItemInput is one requested invoice line.
type ItemInput struct {
	ProductID string
	Quantity  float64
	Price     float64
}

// CreateInput carries the fields accepted when issuing an invoice.
type CreateInput struct {
	CustomerID string
	Subtotal   float64
	Tax        float64
	Total      float64
	DueDate    *time.Time
	Items      []ItemInput
	// Status defaults to DRAFT. The public API never sets it.
	Status domain.Status
}

// Service exposes invoice use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListFilter) (projection.Page[*domain.Invoice], error)
}
