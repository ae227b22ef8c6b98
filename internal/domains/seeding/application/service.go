package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	customerports "github.com/Apurer/erpflow/internal/domains/customers/ports"
	invoicedomain "github.com/Apurer/erpflow/internal/domains/invoices/domain"
	invoiceports "github.com/Apurer/erpflow/internal/domains/invoices/ports"
	leaddomain "github.com/Apurer/erpflow/internal/domains/leads/domain"
	leadports "github.com/Apurer/erpflow/internal/domains/leads/ports"
	productports "github.com/Apurer/erpflow/internal/domains/products/ports"
	"github.com/Apurer/erpflow/internal/domains/seeding/domain"
	"github.com/Apurer/erpflow/internal/domains/seeding/ports"
	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
)

// Dependencies are the bounded context services the seeder writes through.
type Dependencies struct {
	UserCount ports.UserCounter
	Users     userports.Service
	Customers customerports.Service
	Products  productports.Service
	Invoices  invoiceports.Service
	Leads     leadports.Service
}

// Service seeds through the public use cases so every invariant applies to demo data too.
type Service struct {
	deps     Dependencies
	fixtures func() (domain.Fixtures, error)
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

// WithFixtures replaces the embedded demo data set.
func WithFixtures(f domain.Fixtures) Option {
	return func(s *Service) {
		s.fixtures = func() (domain.Fixtures, error) { return f, f.Validate() }
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(deps Dependencies, opts ...Option) *Service {
	s := &Service{
		deps:     deps,
		fixtures: domain.DemoFixtures,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Seed creates the demo data set unless any user already exists.
func (s *Service) Seed(ctx context.Context) (domain.Result, error) {
	existing, err := s.deps.UserCount.Count(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if existing > 0 {
		return domain.Result{Message: domain.MessageAlreadySeeded}, nil
	}
	fixtures, err := s.fixtures()
	if err != nil {
		return domain.Result{}, err
	}

	s.logger.InfoContext(ctx, "seeding database")
	var counts domain.Counts
	now := s.now().UTC()

	for _, u := range fixtures.Users {
		_, err := s.deps.Users.Register(ctx, userports.RegisterInput{
			Email:     u.Email,
			Password:  domain.DemoPassword,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      userdomain.Role(u.Role),
		})
		if err != nil {
			return domain.Result{}, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		counts.Users++
	}

	categoryIDs := make(map[string]string, len(fixtures.Categories))
	for _, c := range fixtures.Categories {
		created, err := s.deps.Products.CreateCategory(ctx, productports.CreateCategoryInput{Name: c.Name, Description: c.Description})
		if err != nil {
			return domain.Result{}, fmt.Errorf("seed category %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = created.ID
		counts.Categories++
	}

	productIDs := make(map[string]string, len(fixtures.Products))
	for _, p := range fixtures.Products {
		created, err := s.deps.Products.Create(ctx, productports.CreateInput{
			Name:        p.Name,
			SKU:         p.SKU,
			Description: p.Description,
			CategoryID:  categoryIDs[p.Category],
			Price:       p.Price,
			Stock:       p.Stock,
		})
		if err != nil {
			return domain.Result{}, fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
		productIDs[p.SKU] = created.ID
		counts.Products++
	}

	customerIDs := make(map[string]string, len(fixtures.Customers))
	for _, c := range fixtures.Customers {
		created, err := s.deps.Customers.Create(ctx, customerports.CreateInput{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
			Company: c.Company,
		})
		if err != nil {
			return domain.Result{}, fmt.Errorf("seed customer %s: %w", c.Email, err)
		}
		customerIDs[c.Email] = created.ID
		counts.Customers++
	}

	for _, inv := range fixtures.Invoices {
		items := make([]invoiceports.ItemInput, 0, len(inv.Items))
		for _, item := range inv.Items {
			items = append(items, invoiceports.ItemInput{ProductID: productIDs[item.SKU], Quantity: item.Quantity, Price: item.Price})
		}
		due := now.AddDate(0, 0, inv.DueInDays)
		if _, err := s.deps.Invoices.Create(ctx, invoiceports.CreateInput{
			CustomerID: customerIDs[inv.Customer],
			Subtotal:   inv.Subtotal,
			Tax:        inv.Tax,
			Total:      inv.Total,
			DueDate:    &due,
			Items:      items,
			Status:     invoicedomain.Status(inv.Status),
		}); err != nil {
			return domain.Result{}, fmt.Errorf("seed invoice for %s: %w", inv.Customer, err)
		}
		counts.Invoices++
	}

	for _, l := range fixtures.Leads {
		lead, err := s.deps.Leads.Create(ctx, leadports.CreateInput{
			Name:       l.Name,
			Email:      l.Email,
			Phone:      l.Phone,
			Company:    l.Company,
			Status:     leaddomain.Status(l.Status),
			Source:     l.Source,
			Value:      l.Value,
			CustomerID: customerIDs[l.Customer],
		})
		if err != nil {
			return domain.Result{}, fmt.Errorf("seed lead %s: %w", l.Name, err)
		}
		counts.Leads++
		for _, in := range l.Interactions {
			if _, err := s.deps.Leads.AddInteraction(ctx, leadports.InteractionInput{
				LeadID:      lead.ID,
				Type:        leaddomain.InteractionType(in.Type),
				Subject:     in.Subject,
				Description: in.Description,
				Date:        now.AddDate(0, 0, -in.DaysAgo),
			}); err != nil {
				return domain.Result{}, fmt.Errorf("seed interaction %s: %w", in.Subject, err)
			}
			counts.Interactions++
		}
	}

	s.logger.InfoContext(ctx, "database seeded",
		slog.Int("users", counts.Users),
		slog.Int("products", counts.Products),
		slog.Int("invoices", counts.Invoices),
	)
	return domain.Result{Message: domain.MessageSeeded, Data: &counts}, nil
}

var _ ports.Service = (*Service)(nil)
