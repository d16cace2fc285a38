package request

import (
	"net/http"
	"time"
)

// Config HTTP 客户端配置
type Config struct {
	BaseURL         string            // 基础 URL
	Timeout         time.Duration     // 全局超时（默认 30s）
	Headers         map[string]string // 全局默认请求头
	IdleConnTimeout time.Duration     // 空闲连接超时（默认 90s）
	Retry           *RetryConfig      // 重试配置（nil 不重试）
	Interceptors    []Interceptor     // 拦截器链
	Logger          Logger            // 日志器（nil 不记录）
	EnableTracing   bool              // 启用 OpenTelemetry 追踪
	Transport       http.RoundTripper // 自定义 Transport
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		Headers:         make(map[string]string),
		IdleConnTimeout: 90 * time.Second,
	}
}

// buildTransport 根据配置构建 http.Transport
func (c *Config) buildTransport() http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.IdleConnTimeout = c.IdleConnTimeout
	return t
}

// Option 配置选项函数
type Option func(*Config)

// WithBaseURL 设置基础 URL
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithTimeout 设置全局超时（<=0 时保留默认值）
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithHeader 设置全局默认请求头
func WithHeader(key, value string) Option {
	return func(c *Config) { c.Headers[key] = value }
}

// WithRetry 设置重试配置
func WithRetry(cfg *RetryConfig) Option {
	return func(c *Config) { c.Retry = cfg }
}

// WithInterceptor 添加拦截器
func WithInterceptor(i Interceptor) Option {
	return func(c *Config) { c.Interceptors = append(c.Interceptors, i) }
}

// WithLogger 设置日志器
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithTracing 启用 OpenTelemetry 追踪
func WithTracing(enable bool) Option {
	return func(c *Config) { c.EnableTracing = enable }
}

// WithTransport 设置自定义 Transport
func WithTransport(t http.RoundTripper) Option {
	return func(c *Config) { c.Transport = t }
}
