package exporters

import (
	"context"
	"errors"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	prev := Getenv
	Getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { Getenv = prev })
}

func TestNewTracingExporter(t *testing.T) {
	withEnv(t, nil)

	for _, name := range []string{"stdout", "none", ""} {
		exp, err := NewTracingExporter(context.Background(), name)
		if err != nil {
			t.Fatalf("NewTracingExporter(%q) error = %v", name, err)
		}
		if exp == nil {
			t.Fatalf("NewTracingExporter(%q) returned nil", name)
		}
	}

	if _, err := NewTracingExporter(context.Background(), "zipkin"); !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("unknown exporter error = %v", err)
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	withEnv(t, nil)

	_, err := NewTracingExporter(context.Background(), "otlp")
	if !errors.Is(err, ErrEndpointNotConfigured) {
		t.Fatalf("error = %v, want ErrEndpointNotConfigured", err)
	}
}

func TestNewMetricsReader(t *testing.T) {
	withEnv(t, nil)

	for _, name := range []string{"stdout", "prometheus", "none", ""} {
		reader, err := NewMetricsReader(context.Background(), name)
		if err != nil {
			t.Fatalf("NewMetricsReader(%q) error = %v", name, err)
		}
		if reader == nil {
			t.Fatalf("NewMetricsReader(%q) returned nil", name)
		}
		_ = reader.Shutdown(context.Background())
	}

	if _, err := NewMetricsReader(context.Background(), "statsd"); !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("unknown exporter error = %v", err)
	}
}

func TestNewMetricsReader_OTLPEndpoint(t *testing.T) {
	withEnv(t, nil)
	if _, err := NewMetricsReader(context.Background(), "otlp"); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Fatalf("error = %v, want ErrEndpointNotConfigured", err)
	}

	withEnv(t, map[string]string{"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT": "localhost:4317"})
	reader, err := NewMetricsReader(context.Background(), "otlp")
	if err != nil {
		t.Fatalf("NewMetricsReader(otlp) error = %v", err)
	}
	if reader == nil {
		t.Fatalf("expected non-nil reader")
	}
}
