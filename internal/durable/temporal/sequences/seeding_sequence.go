package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	seedingdomain "github.com/Apurer/erpflow/internal/domains/seeding/domain"
	seedingactivities "github.com/Apurer/erpflow/internal/durable/temporal/activities/seeding"
)

// RunSeedingSequence executes the seeding activity once. A partially seeded
// database reports "already seeded" on retry, so the activity is not retried.
func RunSeedingSequence(ctx workflow.Context) (seedingdomain.Result, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("seeding sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result seedingdomain.Result
	if err := workflow.ExecuteActivity(ctx, seedingactivities.SeedDatabaseActivityName).Get(ctx, &result); err != nil {
		logger.Error("seeding sequence failed", "error", err)
		return seedingdomain.Result{}, err
	}
	logger.Info("seeding sequence completed", "message", result.Message)
	return result, nil
}
