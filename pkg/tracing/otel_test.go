package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitialize_Disabled(t *testing.T) {
	p, err := Initialize(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, TraceID(context.Background()))
}

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, span := StartSpan(context.Background(), "commission.set_ready")
	assert.NotEmpty(t, TraceID(ctx))
	End(span, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "commission.set_ready", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
