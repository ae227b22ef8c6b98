package seeding

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	seedingdomain "github.com/Apurer/erpflow/internal/domains/seeding/domain"
	seedingports "github.com/Apurer/erpflow/internal/domains/seeding/ports"
)

// SeedDatabaseActivityName loads the demo data set through the seeding service.
const SeedDatabaseActivityName = "seeding.activities.SeedDatabase"

// Activities groups activities that operate on the seeding bounded context.
type Activities struct {
	seeder seedingports.Service
}

func NewActivities(seeder seedingports.Service) *Activities {
	return &Activities{seeder: seeder}
}

// SeedDatabase runs the seeder and returns its result.
func (a *Activities) SeedDatabase(ctx context.Context) (seedingdomain.Result, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.seeder == nil {
		logger.Error("seed activity not initialized")
		return seedingdomain.Result{}, errors.New("seed activity not initialized")
	}
	logger.Info("SeedDatabase activity started")
	result, err := a.seeder.Seed(ctx)
	if err != nil {
		logger.Error("SeedDatabase activity failed", "error", err)
		return seedingdomain.Result{}, err
	}
	logger.Info("SeedDatabase activity completed", "message", result.Message)
	return result, nil
}
