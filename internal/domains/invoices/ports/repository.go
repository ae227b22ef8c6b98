package ports

import (
	"context"
	"errors"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var (
	ErrNotFound         = errors.New("invoice not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// ListFilter narrows the invoice listing.
type ListFilter struct {
	Status     domain.Status
	CustomerID string
	Page       projection.PageRequest
}

type Repository interface {
	// Create stores the invoice with its items and assigns the next invoice number.
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Invoice, int64, error)
	CustomerExists(ctx context.Context, customerID string) (bool, error)
}
