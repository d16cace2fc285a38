package request

import (
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// 重试默认值
const (
	defaultRetries      = 3
	defaultInitialDelay = 200 * time.Millisecond
	defaultMaxDelay     = 5 * time.Second
	defaultMultiplier   = 2.0
)

// RetryConfig 重试配置，nil 表示每个请求只发送一次
type RetryConfig struct {
	MaxAttempts  int           // 首次请求之后的重试次数（对应 --retries n，共发送 n+1 次）
	InitialDelay time.Duration // 第一次重试前的等待
	MaxDelay     time.Duration // 单次等待上限
	Multiplier   float64       // 每次重试的等待倍数

	// RetryIf 决定是否重试，resp 为 nil 表示未拿到响应
	RetryIf func(resp *http.Response, err error) bool
}

// DefaultRetryConfig 返回默认重试配置
func DefaultRetryConfig() *RetryConfig {
	rc := &RetryConfig{}
	rc.normalize()
	return rc
}

// defaultRetryIf 连接失败或 5xx 时重试
// 接口只认 200，但 4xx 与其他 2xx 是确定的结果，重发也不会变成 200，交给 ExpectStatus 报错
func defaultRetryIf(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode >= http.StatusInternalServerError
}

// backoff 第 attempt 次重试前的等待，带 ±25% 抖动
func (rc *RetryConfig) backoff(attempt int) time.Duration {
	delay := math.Min(
		float64(rc.InitialDelay)*math.Pow(rc.Multiplier, float64(attempt)),
		float64(rc.MaxDelay),
	)
	delay += delay * 0.25 * (rand.Float64()*2 - 1)
	return time.Duration(math.Max(delay, 0))
}

// normalize 零值字段取默认值
func (rc *RetryConfig) normalize() {
	if rc.MaxAttempts <= 0 {
		rc.MaxAttempts = defaultRetries
	}
	if rc.InitialDelay <= 0 {
		rc.InitialDelay = defaultInitialDelay
	}
	if rc.MaxDelay <= 0 {
		rc.MaxDelay = defaultMaxDelay
	}
	if rc.Multiplier <= 0 {
		rc.Multiplier = defaultMultiplier
	}
	if rc.RetryIf == nil {
		rc.RetryIf = defaultRetryIf
	}
}
