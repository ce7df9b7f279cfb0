// Package observe provides chain.Sink implementations: structured logging
// through log/slog and Prometheus metrics.
package observe
