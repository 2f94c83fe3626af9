// Package observability wires OpenTelemetry tracing and metrics.
//
// Tracing and metrics export are off unless enabled in config; the global
// no-op providers keep StartSpan and PipelineMetrics safe to call either way.
//
//	shutdown, err := observability.InitTracer(ctx, cfg.Tracing, "transcribealpha", version)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "transcription.upload")
//	defer span.End()
package observability
