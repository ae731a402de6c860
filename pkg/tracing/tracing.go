// Package tracing instruments propcell mapping functions with OpenTelemetry.
//
// Map wraps a mapping so every invocation runs inside a span, which makes
// bind/sync propagation chains visible in a trace backend:
//
//	binding, err := propcell.Bind(celsius,
//	    tracing.Map("celsius_to_fahrenheit", toFahrenheit),
//	    fahrenheit)
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName identifies spans produced by this package.
const defaultTracerName = "propcell"

// Config configures the Map decorator.
type Config struct {
	// TracerName is the name of the tracer (default: "propcell").
	TracerName string

	tracer trace.Tracer
}

// Option configures the Map decorator.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// Map returns fn wrapped so each invocation runs inside a span named name.
// A mapping error is recorded on the span and sets its status before being
// returned unchanged, so propagation semantics are untouched.
func Map[A, B any](name string, fn func(A) (B, error), opts ...Option) func(A) (B, error) {
	cfg := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	return func(a A) (B, error) {
		// Delivery is synchronous and in-process; there is no inbound
		// context to continue from.
		_, span := cfg.tracer.Start(context.Background(), name,
			trace.WithAttributes(attribute.String("propcell.mapping", name)))
		defer span.End()

		b, err := fn(a)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return b, err
	}
}
