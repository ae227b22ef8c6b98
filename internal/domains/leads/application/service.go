package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/leads/domain"
	"github.com/Apurer/erpflow/internal/domains/leads/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// Service exposes lead bounded context use cases.
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

// Create opens a lead, checking the linked customer when one is given.
func (s *Service) Create(ctx context.Context, input ports.CreateInput) (*domain.Lead, error) {
	lead, err := domain.NewLead(uuid.NewString(), input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	lead.Phone = strings.TrimSpace(input.Phone)
	lead.Company = strings.TrimSpace(input.Company)
	lead.Source = strings.TrimSpace(input.Source)
	lead.Value = input.Value
	if input.Status != "" {
		lead.Status = input.Status
	}
	if input.Priority != "" {
		lead.Priority = input.Priority
	}
	if id := strings.TrimSpace(input.AssignedUserID); id != "" {
		lead.AssignedUserID = &id
	}
	if err := lead.Validate(); err != nil {
		return nil, mapError(err)
	}
	if id := strings.TrimSpace(input.CustomerID); id != "" {
		exists, err := s.repo.CustomerExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ports.ErrCustomerNotFound
		}
		lead.CustomerID = &id
	}
	now := s.now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	return s.repo.Create(ctx, lead)
}

// List returns a page of leads together with the pipeline breakdown.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) (ports.ListResult, error) {
	if filter.Status != "" {
		status, err := domain.ParseStatus(string(filter.Status))
		if err != nil {
			return ports.ListResult{}, mapError(err)
		}
		filter.Status = status
	}
	if filter.Priority != "" {
		priority, err := domain.ParsePriority(string(filter.Priority))
		if err != nil {
			return ports.ListResult{}, mapError(err)
		}
		filter.Priority = priority
	}
	filter.UserID = strings.TrimSpace(filter.UserID)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Page = projection.NewPageRequest(filter.Page.Page, filter.Page.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ports.ListResult{}, err
	}
	stats, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return ports.ListResult{}, err
	}
	if stats == nil {
		stats = []domain.StatusCount{}
	}
	return ports.ListResult{Page: projection.NewPage(items, filter.Page, total), Stats: stats}, nil
}

// AddInteraction logs a touchpoint on an existing lead. A zero date means now.
func (s *Service) AddInteraction(ctx context.Context, input ports.InteractionInput) (*domain.Interaction, error) {
	if _, err := s.repo.GetByID(ctx, strings.TrimSpace(input.LeadID)); err != nil {
		return nil, err
	}
	date := input.Date
	if date.IsZero() {
		date = s.now().UTC()
	}
	interaction, err := domain.NewInteraction(uuid.NewString(), strings.TrimSpace(input.LeadID), input.Type, input.Subject, input.Description, date)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.AddInteraction(ctx, interaction)
}

var _ ports.Service = (*Service)(nil)
