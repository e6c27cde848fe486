// Package tracing wires OpenTelemetry spans around flow intents.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	FlowIDKey = "campaignflow.flow.id"
	NodeIDKey = "campaignflow.node.id"
	EdgeIDKey = "campaignflow.edge.id"
	ActionKey = "campaignflow.action"
)

// NewProvider installs a global tracer provider exporting over OTLP/HTTP.
// The exporter reads the standard OTEL_EXPORTER_OTLP_* environment variables.
func NewProvider(ctx context.Context, serviceName string) (*sdktrace.TracerProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}))

	return tp, nil
}

// Tracer returns the named tracer of the global provider. It is a no-op
// until NewProvider has been called.
//
// nolint:ireturn // OpenTelemetry tracers are interfaces
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("intent_rejected", trace.WithAttributes(
		attrs...,
	))
}
