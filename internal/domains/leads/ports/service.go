package ports

import (
	"context"
	"time"

	"github.com/Apurer/erpflow/internal/domains/leads/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// CreateInput carries the fields accepted when opening a lead.
type CreateInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	Status         domain.Status
	Priority       domain.Priority
	Source         string
	Value          *float64
	CustomerID     string
	AssignedUserID string
}

// InteractionInput records a touchpoint against an existing lead.
type InteractionInput struct {
	LeadID      string
	Type        domain.InteractionType
	Subject     string
	Description string
	Date        time.Time
}

// ListResult is a page of leads plus the pipeline breakdown across all leads.
type ListResult struct {
	Page  projection.Page[*domain.Lead]
	Stats []domain.StatusCount
}

// Service exposes lead use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*domain.Lead, error)
	List(ctx context.Context, filter ListFilter) (ListResult, error)
	AddInteraction(ctx context.Context, input InteractionInput) (*domain.Interaction, error)
}
