package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/erpflow/internal/domains/analytics/domain"
	"github.com/Apurer/erpflow/internal/domains/analytics/ports"
)

const tracerName = "github.com/Apurer/erpflow/internal/domains/analytics/adapters/observability/service"

// Service decorates the dashboard aggregator with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Dashboard computes a snapshot. Failures are recorded and returned unchanged.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "AnalyticsService.Dashboard")
	defer span.End()

	started := time.Now()
	result, err := s.inner.Dashboard(ctx)
	elapsed := time.Since(started)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.recordFailure(ctx)
		s.logger.LogAttrs(ctx, slog.LevelError, "dashboard aggregation failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
		)
		return domain.Dashboard{}, err
	}
	span.SetAttributes(
		attribute.Int64("dashboard.invoices.total", result.KPIs.Invoices.Total),
		attribute.Int64("dashboard.leads.total", result.KPIs.Leads.Total),
	)
	s.metrics.recordDuration(ctx, elapsed)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "dashboard computed", slog.Duration("elapsed", elapsed))
	return result, nil
}

type serviceMetrics struct {
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	failures, _ := m.Int64Counter("analytics.dashboard.failures", metric.WithDescription("Dashboard snapshots replaced by the empty fallback"))
	duration, _ := m.Float64Histogram("analytics.dashboard.duration", metric.WithUnit("s"), metric.WithDescription("Dashboard aggregation latency"))
	return serviceMetrics{failures: failures, duration: duration}
}

func (m serviceMetrics) recordFailure(ctx context.Context) {
	if m.failures != nil {
		m.failures.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDuration(ctx context.Context, d time.Duration) {
	if m.duration != nil {
		m.duration.Record(ctx, d.Seconds())
	}
}

var _ ports.Service = (*Service)(nil)
