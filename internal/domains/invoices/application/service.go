package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/domains/invoices/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// Service exposes invoice bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create issues an invoice for an existing customer.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*domain.Invoice, error) {
	items := make([]domain.Item, 0, len(input.Items))
	for _, in := range input.Items {
		item, err := domain.NewItem(uuid.NewString(), in.ProductID, in.Quantity, in.Price)
		if err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}
	invoice, err := domain.NewInvoice(uuid.NewString(), input.CustomerID, input.Subtotal, input.Tax, input.Total, input.DueDate, items)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Status != "" {
		status, err := domain.ParseStatus(string(input.Status))
		if err != nil {
			return nil, mapError(err)
		}
		invoice.Status = status
	}
	exists, err := s.repo.CustomerExists(ctx, invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ports.ErrCustomerNotFound
	}
	now := s.now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	return s.repo.Create(ctx, invoice)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) (projection.Page[*domain.Invoice], error) {
	if filter.Status != "" {
		status, err := domain.ParseStatus(string(filter.Status))
		if err != nil {
			return projection.Page[*domain.Invoice]{}, mapError(err)
		}
		filter.Status = status
	}
	filter.CustomerID = strings.TrimSpace(filter.CustomerID)
	filter.Page = projection.NewPageRequest(filter.Page.Page, filter.Page.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return projection.Page[*domain.Invoice]{}, err
	}
	return projection.NewPage(items, filter.Page, total), nil
}

var _ ports.Service = (*Service)(nil)
