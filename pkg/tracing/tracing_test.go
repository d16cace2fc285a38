package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ExporterType = "zipkin"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.SamplingRate = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.ServiceName = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestStdoutExporterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.ExporterType = ExporterStdout
	cfg.Writer = &buf

	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, cfg)
	require.NoError(t, err)

	_, span := StartSpan(ctx, "dictsync.run")
	RecordError(span, errors.New("boom"))
	span.End()

	require.NoError(t, tp.Shutdown(ctx))
	assert.Contains(t, buf.String(), "dictsync.run")
	assert.Contains(t, buf.String(), "boom")
}

func TestNoopProviderStillAssignsIDs(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, DefaultConfig())
	require.NoError(t, err)
	defer tp.Shutdown(ctx)

	_, span := StartSpan(ctx, "dictsync.language")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
}

func TestNewSampler(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "")

	cfg := DefaultConfig()
	cfg.SamplingType = "never"
	assert.Equal(t, trace.NeverSample().Description(), newSampler(cfg).Description())

	cfg.SamplingType = "ratio"
	cfg.SamplingRate = 0.5
	assert.Equal(t, trace.TraceIDRatioBased(0.5).Description(), newSampler(cfg).Description())
}

func TestNewSampler_Env(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER", "traceidratio")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	assert.Equal(t, trace.TraceIDRatioBased(0.25).Description(), newSampler(DefaultConfig()).Description())
}

func TestParseResourceAttributes(t *testing.T) {
	attrs := parseResourceAttributes("team=web, env = ci ,broken")
	require.Len(t, attrs, 2)
	assert.Equal(t, "team", string(attrs[0].Key))
	assert.Equal(t, "ci", attrs[1].Value.AsString())
}
