// Package temporal builds Temporal clients with tracing and structured logging attached.
package temporal

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/erpflow/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal was switched off in configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Options selects the cluster to dial.
type Options struct {
	Address   string
	Namespace string
	Disabled  bool
	// TracerName names the tracer used by the interceptor, e.g. "temporal-client".
	TracerName string
}

// Dial connects to Temporal with the OpenTelemetry tracing interceptor installed.
func Dial(instruments *platformobservability.Instruments, opts Options) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	if opts.Address == "" {
		opts.Address = client.DefaultHostPort
	}
	if opts.Namespace == "" {
		opts.Namespace = client.DefaultNamespace
	}
	if opts.TracerName == "" {
		opts.TracerName = "temporal-client"
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(opts.TracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  opts.Address,
		Namespace: opts.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
