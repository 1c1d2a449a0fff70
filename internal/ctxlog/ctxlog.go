// Package ctxlog carries a slog.Logger through context.Context, so that
// library code logs with whatever attributes its caller has accumulated.
package ctxlog

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default when there
// is none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// With derives a logger from the one in ctx with the given attributes and
// returns it along with a context carrying it.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}
