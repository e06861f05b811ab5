package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).WithContext(context.Background())

	ctx := InjectTraceID(base)
	id := TraceIDFromContext(ctx)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	log.Ctx(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"traceId":"`+id+`"`)
}

func TestWithTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req-1")
	assert.Equal(t, "req-1", TraceIDFromContext(ctx))

	ctx = WithTraceID(context.Background(), "")
	assert.NotEmpty(t, TraceIDFromContext(ctx))

	assert.Empty(t, TraceIDFromContext(context.Background()))
}
