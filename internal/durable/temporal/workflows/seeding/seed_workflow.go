package seeding

import (
	"go.temporal.io/sdk/workflow"

	seedingdomain "github.com/Apurer/erpflow/internal/domains/seeding/domain"
	"github.com/Apurer/erpflow/internal/durable/temporal/sequences"
)

const (
	// SeedWorkflowName is the public identifier for registering the workflow.
	SeedWorkflowName = "seeding.workflows.Seed"
	// SeedTaskQueue is the queue consumed by the worker processing seeding workflows.
	SeedTaskQueue = "ERP_SEEDING"
)

// SeedWorkflowInput carries request correlation into the workflow history.
type SeedWorkflowInput struct {
	TraceID string
}

// SeedWorkflow loads the demo data set.
func SeedWorkflow(ctx workflow.Context, input SeedWorkflowInput) (seedingdomain.Result, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("SeedWorkflow started", withTraceID(input.TraceID)...)
	result, err := sequences.RunSeedingSequence(ctx)
	if err != nil {
		logger.Error("SeedWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return seedingdomain.Result{}, err
	}
	logger.Info("SeedWorkflow completed", withTraceID(input.TraceID, "message", result.Message)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
