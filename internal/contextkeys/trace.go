package contextkeys

import (
	"context"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// ContextWithTraceID помещает trace_id в контекст
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext извлекает trace_id из контекста, "" если его нет
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// Detach переносит логгер и trace_id в новый фоновый контекст,
// который не отменяется вместе с HTTP-запросом.
func Detach(ctx context.Context) context.Context {
	bg := ContextWithLogger(context.Background(), LoggerFromContext(ctx))
	bg = ContextWithTraceID(bg, TraceIDFromContext(ctx))
	if token := AuthTokenFromContext(ctx); token != "" {
		bg = ContextWithAuthToken(bg, token)
	}
	return bg
}
