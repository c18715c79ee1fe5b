package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Pipeline stage names.
const (
	StageClassify = "classify"
	StageEnsure   = "ensure"
	StageResolve  = "resolve"
	StageRead     = "read"
	StageBatch    = "read_batch"
)

// StageMeta describes one pipeline stage execution for telemetry.
type StageMeta struct {
	Stage        string // pipeline stage (required)
	InvocationID string // shared by all stages of one run
	Environment  string // environment kind, once classified
	Label        string // free-text environment label from config
	Secret       string // secret being read (name only)
}

// SpanName returns the span name for the stage: credops.<stage>.
func (m StageMeta) SpanName() string {
	return "credops." + m.Stage
}

// Validate reports whether the stage name is set.
func (m StageMeta) Validate() error {
	if m.Stage == "" {
		return ErrMissingStageName
	}
	return nil
}

func (m StageMeta) fields() []Field {
	fields := []Field{{Key: "stage", Value: m.Stage}}
	if m.InvocationID != "" {
		fields = append(fields, Field{Key: "invocation_id", Value: m.InvocationID})
	}
	if m.Environment != "" {
		fields = append(fields, Field{Key: "environment", Value: m.Environment})
	}
	if m.Label != "" {
		fields = append(fields, Field{Key: "label", Value: m.Label})
	}
	if m.Secret != "" {
		fields = append(fields, Field{Key: "secret_name", Value: m.Secret})
	}
	return fields
}

// Tracer wraps OpenTelemetry tracing for pipeline stages.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	StartSpan(ctx context.Context, meta StageMeta) (context.Context, trace.Span)
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta StageMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("credops.stage", meta.Stage),
		attribute.Bool("credops.error", false),
	}
	if meta.InvocationID != "" {
		attrs = append(attrs, attribute.String("credops.invocation_id", meta.InvocationID))
	}
	if meta.Environment != "" {
		attrs = append(attrs, attribute.String("credops.environment", meta.Environment))
	}
	if meta.Label != "" {
		attrs = append(attrs, attribute.String("credops.label", meta.Label))
	}
	if meta.Secret != "" {
		attrs = append(attrs, attribute.String("credops.secret_name", meta.Secret))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("credops.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta StageMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
