package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type traceID struct{}

// InjectTraceID attaches a fresh trace id to ctx and to the logger it carries.
func InjectTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.New().String())
}

// WithTraceID attaches id to ctx and to the logger it carries. An empty id is
// replaced by a fresh one.
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	base := log.Ctx(ctx)
	if base.GetLevel() == zerolog.Disabled {
		base = &log.Logger
	}
	logger := base.With().Str("traceId", id).Logger()
	return context.WithValue(logger.WithContext(ctx), traceID{}, id)
}

// TraceIDFromContext returns the trace id attached to ctx, if any.
func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceID{}).(string)
	return id
}
