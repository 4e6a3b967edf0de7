package logging

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithFields returns a context carrying additional zap fields that will be
// attached to every log call made with that context (session id, request
// id, task id, …).
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing := ContextFields(ctx)
	merged := append(append([]zap.Field{}, existing...), fields...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// ContextFields returns the zap fields previously attached via WithFields,
// or nil if none.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxKey{}).([]zap.Field)
	return fields
}

// WithSession is a convenience wrapper for the common case of tagging a
// context with the active session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return WithFields(ctx, zap.String("session", sessionID))
}
