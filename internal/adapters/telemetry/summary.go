package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// BuildSpanName is the name of the span wrapped around every build function call.
const BuildSpanName = "build"

// BuildStats aggregates the build spans ended since the last reset.
type BuildStats struct {
	Built    int
	Failed   int
	Duration time.Duration
}

// Summary implements sdktrace.SpanProcessor and tallies build spans.
// Nested builds each count once; Duration sums only top-level builds.
type Summary struct {
	mu    sync.Mutex
	stats BuildStats
}

var _ sdktrace.SpanProcessor = (*Summary)(nil)

// NewSummary returns an empty Summary.
func NewSummary() *Summary {
	return &Summary{}
}

// OnStart does nothing.
func (s *Summary) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd counts s if it is a build span.
func (s *Summary) OnEnd(span sdktrace.ReadOnlySpan) {
	if span.Name() != BuildSpanName {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if span.Status().Code == codes.Error {
		s.stats.Failed++
	} else {
		s.stats.Built++
	}
	if !span.Parent().IsValid() {
		s.stats.Duration += span.EndTime().Sub(span.StartTime())
	}
}

// Stats returns the current tallies.
func (s *Summary) Stats() BuildStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset returns the current tallies and clears them.
func (s *Summary) Reset() BuildStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	s.stats = BuildStats{}
	return stats
}

// ForceFlush does nothing.
func (s *Summary) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (s *Summary) Shutdown(_ context.Context) error {
	return nil
}
