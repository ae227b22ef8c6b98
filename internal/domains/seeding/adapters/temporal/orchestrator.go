// Package temporal runs seeding as a durable workflow when a Temporal cluster is available.
package temporal

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/erpflow/internal/domains/seeding/domain"
	"github.com/Apurer/erpflow/internal/domains/seeding/ports"
	seedworkflows "github.com/Apurer/erpflow/internal/durable/temporal/workflows/seeding"
)

// WorkflowID is fixed so concurrent seed requests attach to one run.
const WorkflowID = "erpflow-seed"

var _ ports.Service = (*Orchestrator)(nil)

// Orchestrator starts the seed workflow and waits for its result.
type Orchestrator struct {
	client    client.Client
	taskQueue string
}

func NewOrchestrator(c client.Client) *Orchestrator {
	return &Orchestrator{client: c, taskQueue: seedworkflows.SeedTaskQueue}
}

func (o *Orchestrator) Seed(ctx context.Context) (domain.Result, error) {
	if o == nil || o.client == nil {
		return domain.Result{}, errors.New("temporal client not configured")
	}
	input := seedworkflows.SeedWorkflowInput{}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		input.TraceID = sc.TraceID().String()
	}
	run, err := o.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                       WorkflowID,
		TaskQueue:                o.taskQueue,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}, seedworkflows.SeedWorkflowName, input)
	if err != nil {
		return domain.Result{}, fmt.Errorf("start seed workflow: %w", err)
	}
	var result domain.Result
	if err := run.Get(ctx, &result); err != nil {
		return domain.Result{}, fmt.Errorf("seed workflow %s: %w", run.GetRunID(), err)
	}
	return result, nil
}

// Fallback prefers the durable path and runs inline when the workflow cannot be started.
type Fallback struct {
	Durable ports.Service
	Inline  ports.Service
	OnError func(ctx context.Context, err error)
}

func (f Fallback) Seed(ctx context.Context) (domain.Result, error) {
	if f.Durable == nil {
		return f.Inline.Seed(ctx)
	}
	result, err := f.Durable.Seed(ctx)
	if err == nil {
		return result, nil
	}
	if f.OnError != nil {
		f.OnError(ctx, err)
	}
	return f.Inline.Seed(ctx)
}
