package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InstrumentationName names the tracer handed to the cache engine.
const InstrumentationName = "go.trai.ch/recache"

// Provider owns an SDK tracer provider whose spans feed a Summary.
type Provider struct {
	tp      *sdktrace.TracerProvider
	summary *Summary
	tracer  *OTelTracer
}

// NewProvider builds a provider with a Summary plus any extra span processors.
func NewProvider(processors ...sdktrace.SpanProcessor) *Provider {
	summary := NewSummary()

	opts := []sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(summary)}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	return &Provider{
		tp:      tp,
		summary: summary,
		tracer:  NewOTelTracerFrom(tp, InstrumentationName),
	}
}

// Tracer returns the tracer bound to this provider.
func (p *Provider) Tracer() *OTelTracer {
	return p.tracer
}

// Summary returns the build span tally.
func (p *Provider) Summary() *Summary {
	return p.summary
}

// Shutdown flushes and stops every span processor.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
