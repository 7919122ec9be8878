package tracing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

// Shutdown flushes pending spans.
type Shutdown func(ctx context.Context) error

// Init installs an OTLP tracer provider. Without an endpoint it leaves the global no-op
// provider in place and returns a no-op Shutdown.
func Init(cfg config.Config, log logger.Logger, serviceName string) (Shutdown, error) {
	if cfg.Jaeger.OTLPEndpoint == "" {
		log.Info("Tracing disabled, OTLP endpoint not configured")
		return func(context.Context) error { return nil }, nil
	}

	tp, err := NewTracerProvider(cfg, log, serviceName)
	if err != nil {
		return nil, err
	}
	return tp.Shutdown, nil
}

func NewTracerProvider(cfg config.Config, log logger.Logger, serviceName string) (*sdktrace.TracerProvider, error) {
	log.Info("Initializing OTLP Tracer...")

	conn, err := grpc.NewClient(cfg.Jaeger.OTLPEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to Jaeger: %w", err)
	}

	exporter, err := otlptracegrpc.New(context.Background(), otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("OTLP Tracer initialized successfully", zap.String("service_name", serviceName), zap.String("endpoint", cfg.Jaeger.OTLPEndpoint))
	return tp, nil
}
