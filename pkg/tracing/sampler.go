package tracing

import (
	"os"
	"strconv"

	"go.opentelemetry.io/otel/sdk/trace"
)

// newSampler 根据配置创建采样器，OTEL_TRACES_SAMPLER 优先
func newSampler(cfg *Config) trace.Sampler {
	kind := cfg.SamplingType
	rate := cfg.SamplingRate
	if env := os.Getenv("OTEL_TRACES_SAMPLER"); env != "" {
		kind = env
		rate = envSamplingRatio(rate)
	}

	switch kind {
	case "always", "always_on":
		return trace.AlwaysSample()
	case "never", "always_off":
		return trace.NeverSample()
	case "ratio", "traceidratio":
		return trace.TraceIDRatioBased(rate)
	case "parentbased_always_on":
		return trace.ParentBased(trace.AlwaysSample())
	case "parentbased_always_off":
		return trace.ParentBased(trace.NeverSample())
	default:
		return trace.ParentBased(trace.TraceIDRatioBased(rate))
	}
}

// envSamplingRatio 读取 OTEL_TRACES_SAMPLER_ARG，无效时返回 fallback
func envSamplingRatio(fallback float64) float64 {
	s := os.Getenv("OTEL_TRACES_SAMPLER_ARG")
	if s == "" {
		return fallback
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 0 || r > 1 {
		return fallback
	}
	return r
}
