package tracing

import (
	"io"
	"os"
	"time"

	"github.com/tokmz/dictsync/pkg/errors"
)

// 导出器类型
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
	ExporterNoop   = "noop"
)

// ErrInvalidConfig 追踪配置无效
var ErrInvalidConfig = errors.New(3101, 1, "追踪配置无效", nil)

// Config 链路追踪配置
type Config struct {
	// 服务名称（必填）
	ServiceName string

	// 服务版本
	ServiceVersion string

	// 导出器类型（stdout/otlp/noop）
	ExporterType string

	// 导出器端点（OTLP Collector 地址，host:port）
	ExporterEndpoint string

	// 导出器请求头（用于认证）
	ExporterHeaders map[string]string

	// 是否使用非 TLS 连接
	Insecure bool

	// stdout 导出器的输出目标（默认 os.Stderr，不污染标准输出）
	Writer io.Writer

	// 采样率（0.0-1.0）
	SamplingRate float64

	// 采样类型（always/never/ratio/parent_based）
	SamplingType string

	// 资源属性（自定义标签）
	ResourceAttributes map[string]string

	// 批量导出超时
	BatchTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		ServiceName:        "dictsync",
		ServiceVersion:     "dev",
		ExporterType:       ExporterNoop,
		Writer:             os.Stderr,
		SamplingRate:       1.0,
		SamplingType:       "always",
		ResourceAttributes: make(map[string]string),
		BatchTimeout:       time.Second,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrInvalidConfig.WithMessage("追踪配置无效: 缺少 service name")
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return ErrInvalidConfig.WithMessage("追踪配置无效: 采样率必须在 0.0 到 1.0 之间")
	}
	switch c.ExporterType {
	case ExporterStdout, ExporterOTLP, ExporterNoop:
	default:
		return ErrInvalidConfig.WithMessage("追踪配置无效: 未知导出器 " + c.ExporterType)
	}
	return nil
}
