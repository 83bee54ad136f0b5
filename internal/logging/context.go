package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerContextKey struct{}

// IntoContext attaches logger to ctx so the runner and its workers can
// log with the CLI's configured level and output.
func IntoContext(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext returns the logger attached by IntoContext. Contexts
// without one fall back to the package default, so callers never get
// a nil logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerContextKey{}).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
