package ports

import (
	"context"
	"errors"

	"github.com/Apurer/erpflow/internal/domains/leads/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var (
	ErrNotFound         = errors.New("lead not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

// RecentInteractionLimit bounds the interactions folded into each listed lead.
const RecentInteractionLimit = 3

// ListFilter narrows the lead listing.
type ListFilter struct {
	Status   domain.Status
	Priority domain.Priority
	// UserID matches the assigned sales user.
	UserID string
	// Search matches name, email or company case-insensitively.
	Search string
	Page   projection.PageRequest
}

type Repository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Lead, int64, error)
	// StatusBreakdown groups every lead by status with its count and value sum.
	StatusBreakdown(ctx context.Context) ([]domain.StatusCount, error)
	AddInteraction(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error)
	CustomerExists(ctx context.Context, customerID string) (bool, error)
}
