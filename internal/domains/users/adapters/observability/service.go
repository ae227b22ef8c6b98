package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/erpflow/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
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

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.role", string(input.Role))))
	defer span.End()
	s.logInfo(ctx, "registering user", slog.String("email", input.Email))
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("email", input.Email))
	}
	s.metrics.recordRegistered(ctx, result.Role)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*userports.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.String("user.id", result.User.ID))
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID), slog.String("message", result.Message))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	s.logInfo(ctx, "session revoked")
	return nil
}

// Authenticate runs on every gated request, so it only logs failures.
func (s *Service) Authenticate(ctx context.Context, token string) (*userports.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "authentication rejected", slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID), attribute.String("user.role", string(principal.Role)))
	return principal, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	registered metric.Int64Counter
	logins     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Login attempts by outcome"))
	return serviceMetrics{registered: registered, logins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, role userdomain.Role) {
	if m.registered == nil {
		return
	}
	m.registered.Add(ctx, 1, metric.WithAttributes(attribute.String("user.role", string(role))))
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins == nil {
		return
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
