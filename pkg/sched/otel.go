package sched

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for scheduler spans.
const defaultTracerName = "rivulet/sched"

// TraceConfig configures the tracing scheduler decorator.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "rivulet/sched").
	TracerName string

	// SpanName is the name given to each task span (default: "sched.task").
	SpanName string

	// Attributes are added to every task span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TraceOption configures the tracing scheduler decorator.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithSpanName sets the per-task span name.
func WithSpanName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.SpanName = name
	}
}

// WithAttributes adds constant attributes to every task span.
func WithAttributes(attrs ...attribute.KeyValue) TraceOption {
	return func(c *TraceConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// tracedScheduler wraps a Scheduler and records a span around each task run.
type tracedScheduler struct {
	inner  Scheduler
	config TraceConfig
}

// Traced decorates inner so every task it runs is recorded as a span.
//
// Example:
//
//	q := sched.NewQueue()
//	s := sched.Traced(q, sched.WithTracerName("myapp"))
func Traced(inner Scheduler, opts ...TraceOption) Scheduler {
	config := TraceConfig{
		TracerName: defaultTracerName,
		SpanName:   "sched.task",
	}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &tracedScheduler{inner: inner, config: config}
}

// Enqueue schedules task on the inner scheduler wrapped in a span.
func (t *tracedScheduler) Enqueue(task func()) {
	if task == nil {
		return
	}
	t.inner.Enqueue(func() {
		_, span := t.config.tracer.Start(context.Background(), t.config.SpanName,
			trace.WithAttributes(t.config.Attributes...))
		defer span.End()
		task()
	})
}
