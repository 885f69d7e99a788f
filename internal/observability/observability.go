// Package observability bundles the logger, tracer provider, and prometheus
// registry handed to every module, plus the HTTP surface exposing /metrics
// and /healthz.
package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds the observability settings pulled from the app config.
type Config struct {
	Environment    string
	LogLevel       string
	MetricsAddress string
}

// Observability carries the shared telemetry components.
type Observability struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Registry       *prometheus.Registry
}

// Init builds production observability: JSON slog to stdout, a prometheus
// registry with runtime collectors, and the globally configured otel tracer
// provider (a no-op unless the deployment wires an exporter).
func Init(cfg Config) *Observability {
	level := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("environment", cfg.Environment))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:         logger,
		TracerProvider: otel.GetTracerProvider(),
		Registry:       registry,
	}
}

// NewTestObservability returns silent components for unit tests.
func NewTestObservability() *Observability {
	return &Observability{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		TracerProvider: noop.NewTracerProvider(),
		Registry:       prometheus.NewRegistry(),
	}
}

// Tracer returns a named tracer from the provider.
func (o *Observability) Tracer(name string) trace.Tracer {
	return o.TracerProvider.Tracer(name)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
