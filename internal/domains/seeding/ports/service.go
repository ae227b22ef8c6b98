package ports

import (
	"context"

	"github.com/Apurer/erpflow/internal/domains/seeding/domain"
)

// UserCounter reports how many accounts exist. Any existing account means the database is already seeded.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service loads the demo data set into an empty database.
type Service interface {
	Seed(ctx context.Context) (domain.Result, error)
}
