package ports

import (
	"context"
	"errors"

	"github.com/Apurer/erpflow/internal/domains/customers/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var (
	ErrNotFound       = errors.New("customer not found")
	ErrDuplicateEmail = errors.New("customer with this email already exists")
)

// ListFilter narrows the customer listing.
type ListFilter struct {
	// Search matches name, email or company case-insensitively.
	Search string
	Page   projection.PageRequest
}

// RecentInvoiceLimit bounds the invoices folded into each listed customer.
const RecentInvoiceLimit = 5

type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Summary, int64, error)
}
