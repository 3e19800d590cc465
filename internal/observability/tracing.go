// Package observability wires the OpenTelemetry trace pipeline. Tracing is
// opt-in: without OTEL_ENABLED=true the global provider stays a no-op and
// the otelgin middleware costs nothing.
package observability

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/otostudy/otostudy-backend/internal/logger"
	"github.com/otostudy/otostudy-backend/internal/utils"
)

// InitTracing sets the global tracer provider and returns its shutdown func.
func InitTracing(ctx context.Context, log *logger.Logger) (func(context.Context) error, error) {
	enabled := strings.EqualFold(utils.GetEnv("OTEL_ENABLED", "false", log), "true")
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	var exporter sdktrace.SpanExporter
	var err error
	switch utils.GetEnv("OTEL_EXPORTER", "stdout", log) {
	case "otlp":
		exporter, err = otlptracehttp.New(ctx)
	default:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("otostudy-backend"),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Info("Tracing enabled")
	return tp.Shutdown, nil
}
