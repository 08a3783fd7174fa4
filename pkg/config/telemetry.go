package config

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/version"
)

const stdoutEndpoint = "stdout"

type Telemetry struct {
	tracer *sdktrace.TracerProvider
}

// Shutdown flushes pending spans
func (t *Telemetry) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.tracer.Shutdown(ctx); err != nil {
		log.Warn("could not shutdown tracer provider", log.ErrorField(err))
	}
}

// SetupTelemetry installs a global tracer provider which exports to
// TelemetryEndpoint (OTLP gRPC) or to stdout.
func SetupTelemetry(ctx context.Context) (*Telemetry, error) {
	var exporter sdktrace.SpanExporter
	var err error
	if TelemetryEndpoint == stdoutEndpoint {
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stdout),
			stdouttrace.WithPrettyPrint())
	} else {
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(TelemetryEndpoint),
			otlptracegrpc.WithInsecure())
	}
	if err != nil {
		return nil, err
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", "drt"),
		attribute.String("service.version", version.Version),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return &Telemetry{tracer: tp}, nil
}
