package tracing

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// NewTracerProvider 创建 TracerProvider 并注册为全局 Provider
// 调用方负责在退出前调用 Shutdown 以导出剩余 Span
func NewTracerProvider(ctx context.Context, cfg *Config) (*trace.TracerProvider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, ErrInvalidConfig.WithError(err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, ErrInvalidConfig.WithError(err)
	}

	opts := []trace.TracerProviderOption{
		trace.WithSampler(newSampler(cfg)),
		trace.WithResource(res),
	}
	// noop 不挂处理器，Span 仍有 ID 可写入日志
	if exporter != nil {
		opts = append(opts, trace.WithSpanProcessor(trace.NewBatchSpanProcessor(
			exporter,
			trace.WithBatchTimeout(cfg.BatchTimeout),
		)))
	}

	tp := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// newResource 创建资源（服务信息和自定义属性）
func newResource(ctx context.Context, cfg *Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	}

	if len(cfg.ResourceAttributes) > 0 {
		custom := make([]attribute.KeyValue, 0, len(cfg.ResourceAttributes))
		for k, v := range cfg.ResourceAttributes {
			custom = append(custom, attribute.String(k, v))
		}
		attrs = append(attrs, resource.WithAttributes(custom...))
	}

	if env := os.Getenv("OTEL_RESOURCE_ATTRIBUTES"); env != "" {
		attrs = append(attrs, resource.WithAttributes(parseResourceAttributes(env)...))
	}

	attrs = append(attrs, resource.WithTelemetrySDK())

	return resource.New(ctx, attrs...)
}

// parseResourceAttributes 解析 key1=value1,key2=value2
func parseResourceAttributes(s string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if ok {
			attrs = append(attrs, attribute.String(strings.TrimSpace(k), strings.TrimSpace(v)))
		}
	}
	return attrs
}
