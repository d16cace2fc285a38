package request

import (
	"fmt"

	"github.com/tokmz/dictsync/pkg/errors"
)

// 4000 段错误码：HTTP 客户端相关
var (
	// ErrRequestFailed 请求失败
	ErrRequestFailed = errors.New(4001, 1, "请求失败", nil)
	// ErrTimeout 请求超时
	ErrTimeout = errors.New(4002, 1, "请求超时", nil)
	// ErrUnmarshal 反序列化失败
	ErrUnmarshal = errors.New(4004, 1, "反序列化失败", nil)
	// ErrMaxRetry 重试次数已用尽
	ErrMaxRetry = errors.New(4005, 1, "重试次数已用尽", nil)
	// ErrInvalidURL 无效的 URL
	ErrInvalidURL = errors.New(4006, 1, "无效的URL", nil)
	// ErrUnexpectedStatus 响应状态码不符合预期
	ErrUnexpectedStatus = errors.New(4007, 1, "响应状态码异常", nil)
)

// StatusError 状态码不符合预期时的错误详情
type StatusError struct {
	StatusCode int
	Body       string // 截断后的响应体
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Is 使 errors.Is(err, ErrUnexpectedStatus) 成立
func (e *StatusError) Is(target error) bool {
	return ErrUnexpectedStatus.Is(target)
}
