package cypher

// Version is reported by the CLI and the telemetry instrumentation scope.
// It is injected at build time via -ldflags.
var Version = "dev"
