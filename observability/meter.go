package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/transcribealpha/logger"
)

// InitMeter installs an OTLP/HTTP meter provider when cfg.Enabled.
// The returned ShutdownFunc is always non-nil.
func InitMeter(ctx context.Context, cfg Config, serviceName, serviceVersion string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}
	cfg.ApplyDefaults()

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(serviceName, serviceVersion, cfg.Environment)
	if err != nil {
		return noopShutdown, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp.Shutdown, nil
}

// PipelineMetrics holds the instruments recorded by the transcription pipeline.
// A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	transcriptions metric.Int64Counter
	stageDuration  metric.Float64Histogram
	pollAttempts   metric.Int64Histogram
	warnings       metric.Int64Counter
	cleanups       metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter.
// Pass nil to use the global meter provider.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	if meter == nil {
		meter = otel.Meter(tracerName)
	}

	transcriptions, err := meter.Int64Counter("transcription.requests",
		metric.WithDescription("Transcription requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.requests counter: %w", err)
	}
	stageDuration, err := meter.Float64Histogram("transcription.stage.duration",
		metric.WithDescription("Duration of each pipeline stage"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.stage.duration histogram: %w", err)
	}
	pollAttempts, err := meter.Int64Histogram("transcription.poll.attempts",
		metric.WithDescription("Status checks needed before a remote file became ready"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.poll.attempts histogram: %w", err)
	}
	warnings, err := meter.Int64Counter("transcription.validation.warnings",
		metric.WithDescription("Records dropped or repaired during validation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.validation.warnings counter: %w", err)
	}
	cleanups, err := meter.Int64Counter("transcription.cleanup",
		metric.WithDescription("Remote file release attempts by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription.cleanup counter: %w", err)
	}

	return &PipelineMetrics{
		transcriptions: transcriptions,
		stageDuration:  stageDuration,
		pollAttempts:   pollAttempts,
		warnings:       warnings,
		cleanups:       cleanups,
	}, nil
}

// RecordOutcome counts a finished request. outcome is "ok" or an error code.
func (m *PipelineMetrics) RecordOutcome(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.transcriptions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordStage records how long a pipeline stage took.
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("failed", failed),
	))
}

// RecordPollAttempts records the number of status checks for one file.
func (m *PipelineMetrics) RecordPollAttempts(ctx context.Context, attempts int, state string) {
	if m == nil {
		return
	}
	m.pollAttempts.Record(ctx, int64(attempts), metric.WithAttributes(attribute.String("state", state)))
}

// RecordWarnings counts validation warnings by code.
func (m *PipelineMetrics) RecordWarnings(ctx context.Context, code string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.warnings.Add(ctx, int64(n), metric.WithAttributes(attribute.String("code", code)))
}

// RecordCleanup counts a release attempt.
func (m *PipelineMetrics) RecordCleanup(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	m.cleanups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
}
