// Package trace owns the OpenTelemetry tracer for the service. Spans wrap
// enrichment batches so zero-fill events and backend latency line up with
// log output; the exporter writes to stdout, shipping is someone else's
// problem.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ib-partner-service"

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	enabled  bool
)

// Init sets up the tracer provider. Disabled entirely when
// LOG_TRACING_ENABLED=false; StartSpan then degrades to a pass-through.
func Init() error {
	if os.Getenv("LOG_TRACING_ENABLED") == "false" {
		enabled = false
		return nil
	}
	enabled = true

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion("1.0.0"),
	))
	if err != nil {
		return err
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracer = otel.Tracer(serviceName)
	return nil
}

// Shutdown flushes pending spans. Safe to call when Init was skipped.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// StartSpan begins a span, or returns the context's current span untouched
// when tracing is off. Callers always get a span they can defer End() on.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	return enabled
}
