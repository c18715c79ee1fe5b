package observe

import (
	"context"
	"time"
)

// StageFunc is one unit of pipeline work. Results are returned through the
// closure; the middleware only sees the error.
type StageFunc func(ctx context.Context) error

// Middleware wraps pipeline stages with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: errors from the wrapped stage are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from its parts. Nil parts are replaced
// by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Logger returns the stage-scoped logger for meta.
func (m *Middleware) Logger(meta StageMeta) Logger {
	return m.logger.WithStage(meta)
}

// Run executes fn as the stage described by meta.
func (m *Middleware) Run(ctx context.Context, meta StageMeta, fn StageFunc) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	ctx, span := m.tracer.StartSpan(ctx, meta)
	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)
	m.tracer.EndSpan(span, err)
	m.metrics.RecordStage(ctx, meta, duration, err)

	logger := m.logger.WithStage(meta)
	fields := []Field{{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000}}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, "stage failed", fields...)
	} else {
		logger.Debug(ctx, "stage completed", fields...)
	}

	return err
}
