package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/transcribealpha/observability"
)

// Telemetry holds the installed providers and the pipeline instruments.
type Telemetry struct {
	Metrics *observability.PipelineMetrics

	shutdown []observability.ShutdownFunc
}

// InitTelemetry installs the tracer and meter providers the config enables.
// Metrics is always usable; with metrics disabled it records to the no-op
// global provider.
func InitTelemetry(ctx context.Context, cfg *Config) (*Telemetry, error) {
	t := &Telemetry{}

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing, cfg.Name, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}
	t.shutdown = append(t.shutdown, shutdownTracer)

	shutdownMeter, err := observability.InitMeter(ctx, cfg.Metrics, cfg.Name, cfg.Version)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("metrics: %w", err)
	}
	t.shutdown = append(t.shutdown, shutdownMeter)

	t.Metrics, err = observability.NewPipelineMetrics(nil)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	return t, nil
}

// Shutdown flushes and stops the providers, newest first.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		if err := t.shutdown[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
