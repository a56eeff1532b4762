package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext returns the logger stored by WithContext, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithProject tags the context's logger with the project root.
func WithProject(ctx context.Context, root string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String("project", root)))
}

// SetDefault makes logger the fallback for contexts without one.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
