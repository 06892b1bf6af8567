package cypher

import "github.com/seuros/gopher-cypher/src/logging"

// ExistsConfig holds configuration options for EXISTS rendering
type ExistsConfig struct {
	// Logger receives warnings about best-effort rewrites and fallbacks.
	// Default: no-op logger
	Logger logging.Logger

	// Rewriter converts the indented subquery into an inline pattern.
	// Default: a PatternRewriter reporting to Logger
	Rewriter Rewriter

	// BalancedFallback closes the block fallback with "}" instead of ")".
	// Default: false, which keeps output byte-compatible with existing
	// consumers of the "EXISTS {" ... ")" form
	BalancedFallback bool

	// Observability holds telemetry configuration
	Observability *ObservabilityConfig
}

// DefaultExistsConfig returns an ExistsConfig with sensible defaults
func DefaultExistsConfig() *ExistsConfig {
	return &ExistsConfig{
		Logger:        &logging.NoOpLogger{},
		Observability: DefaultObservabilityConfig(),
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *ExistsConfig) withDefaults() *ExistsConfig {
	out := DefaultExistsConfig()
	if c == nil {
		out.Rewriter = defaultRewriter
		return out
	}
	out.BalancedFallback = c.BalancedFallback
	if c.Logger != nil {
		out.Logger = c.Logger
	}
	if c.Observability != nil {
		out.Observability = c.Observability
	}
	out.Rewriter = c.Rewriter
	if out.Rewriter == nil {
		out.Rewriter = NewPatternRewriter(out.Logger)
	}
	return out
}
