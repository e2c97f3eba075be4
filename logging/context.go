// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logging

import (
	"context"
)

type loggerKey struct{}

// WithContext returns a copy of ctx carrying log.
func WithContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// WithArgs returns a copy of ctx whose logger adds args to every event.
// It does nothing when ctx carries no logger.
func WithArgs(ctx context.Context, args ...any) context.Context {
	log, ok := loggerFrom(ctx)
	if !ok || len(args) == 0 {
		return ctx
	}

	return WithContext(ctx, log.With(args...))
}

// FromContext returns the logger carried by ctx, or a logger discarding every event.
func FromContext(ctx context.Context) Logger {
	return FromContextOr(ctx, nullLogger)
}

// FromContextOr returns the logger carried by ctx, or fallback.
func FromContextOr(ctx context.Context, fallback Logger) Logger {
	if log, ok := loggerFrom(ctx); ok {
		return log
	}

	return fallback
}

func loggerFrom(ctx context.Context) (Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	log, ok := ctx.Value(loggerKey{}).(Logger)
	return log, ok
}
