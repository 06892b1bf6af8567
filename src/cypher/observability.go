package cypher

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/seuros/gopher-cypher/src/cypher"

// Outcomes recorded for an EXISTS render.
const (
	OutcomeRewritten = "rewritten"
	OutcomeFallback  = "fallback"
)

const outcomeKey = attribute.Key("cypher.exists.outcome")

// ObservabilityConfig controls telemetry collection
type ObservabilityConfig struct {
	// EnableTracing wraps every EXISTS render in a span
	EnableTracing bool

	// EnableMetrics counts EXISTS renders by outcome
	EnableMetrics bool

	// TracingAttributes are additional attributes to add to all spans
	TracingAttributes []attribute.KeyValue

	// MetricAttributes are additional attributes to add to all metrics
	MetricAttributes []attribute.KeyValue

	// TracerProvider overrides the global tracer provider when set
	TracerProvider trace.TracerProvider

	// MeterProvider overrides the global meter provider when set
	MeterProvider metric.MeterProvider
}

// DefaultObservabilityConfig returns default observability configuration
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		EnableTracing: true,
		EnableMetrics: true,
		TracingAttributes: []attribute.KeyValue{
			attribute.String("db.system", "neo4j"),
			attribute.String("cypher.builder", "gopher-cypher"),
			attribute.String("cypher.builder.version", Version),
		},
		MetricAttributes: []attribute.KeyValue{
			attribute.String("db.system", "neo4j"),
			attribute.String("cypher.builder", "gopher-cypher"),
		},
	}
}

// renderInstruments holds OpenTelemetry instruments
type renderInstruments struct {
	tracer  trace.Tracer
	meter   metric.Meter
	renders metric.Int64Counter
}

var (
	globalInstrumentsOnce sync.Once
	globalInstruments     *renderInstruments
)

// instrumentsFor returns instruments bound to the providers of cfg, falling
// back to the shared instruments of the global providers.
func instrumentsFor(cfg *ObservabilityConfig) *renderInstruments {
	if cfg.TracerProvider == nil && cfg.MeterProvider == nil {
		globalInstrumentsOnce.Do(func() {
			globalInstruments = newRenderInstruments(otel.GetTracerProvider(), otel.GetMeterProvider())
		})
		return globalInstruments
	}
	tp, mp := cfg.TracerProvider, cfg.MeterProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return newRenderInstruments(tp, mp)
}

func newRenderInstruments(tp trace.TracerProvider, mp metric.MeterProvider) *renderInstruments {
	instruments := &renderInstruments{
		tracer: tp.Tracer(instrumentationName, trace.WithInstrumentationVersion(Version)),
		meter:  mp.Meter(instrumentationName, metric.WithInstrumentationVersion(Version)),
	}

	var err error
	instruments.renders, err = instruments.meter.Int64Counter(
		"cypher.exists.renders",
		metric.WithDescription("Number of EXISTS subqueries rendered, by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return instruments
}

// startRender opens the render span under parent when tracing is enabled.
func (i *renderInstruments) startRender(parent context.Context, cfg *ObservabilityConfig) (context.Context, trace.Span) {
	if !cfg.EnableTracing {
		return parent, trace.SpanFromContext(context.Background())
	}
	return i.tracer.Start(parent, "cypher.exists.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(cfg.TracingAttributes...),
	)
}

// finishRender records the outcome on the span and the render counter.
func (i *renderInstruments) finishRender(ctx context.Context, cfg *ObservabilityConfig, span trace.Span, outcome string, err error) {
	span.SetAttributes(outcomeKey.String(outcome))
	if err != nil {
		span.AddEvent("rewrite skipped", trace.WithAttributes(attribute.String("reason", err.Error())))
	}
	if cfg.EnableMetrics && i.renders != nil {
		attrs := append([]attribute.KeyValue{outcomeKey.String(outcome)}, cfg.MetricAttributes...)
		i.renders.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
