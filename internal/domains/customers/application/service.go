package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/customers/domain"
	"github.com/Apurer/erpflow/internal/domains/customers/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// Service exposes customer bounded context use cases.
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

func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(uuid.NewString(), input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	customer.UpdateContact(input.Phone, input.Address, input.Company)
	now := s.now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return s.repo.Create(ctx, customer)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) (projection.Page[*domain.Summary], error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Page = projection.NewPageRequest(filter.Page.Page, filter.Page.Limit)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return projection.Page[*domain.Summary]{}, err
	}
	return projection.NewPage(items, filter.Page, total), nil
}

var _ ports.Service = (*Service)(nil)
