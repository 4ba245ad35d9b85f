package recommend

import "context"

type ctxKey string

const TraceIDKey ctxKey = "trace_id"

// WithTraceID stores a trace id in the context for downstream logging.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(TraceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
